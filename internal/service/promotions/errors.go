package promotions

import "errors"

var (
	// ErrPromotionNotFound возвращается, когда акция не найдена в салоне
	ErrPromotionNotFound = errors.New("promotions: promotion not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions: internal error")
)
