package salons

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salons: salon not found")

	// ErrDuplicateEmail возвращается, когда салон с таким email уже зарегистрирован
	ErrDuplicateEmail = errors.New("salons: salon with this email already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("salons: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("salons: internal error")
)
