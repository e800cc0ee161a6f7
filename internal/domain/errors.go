package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrInvalidStatusTransition переход статуса записи не разрешён
	ErrInvalidStatusTransition = errors.New("domain: invalid status transition")

	// ErrUnknownStatus неизвестный статус записи
	ErrUnknownStatus = errors.New("domain: unknown appointment status")

	// ErrInvalidPromotionConfiguration акция не прошла валидацию при создании/изменении
	ErrInvalidPromotionConfiguration = errors.New("domain: invalid promotion configuration")

	// ErrInvalidSchedule расписание салона не прошло валидацию
	ErrInvalidSchedule = errors.New("domain: invalid schedule")

	// ErrInvalidService услуга не прошла валидацию
	ErrInvalidService = errors.New("domain: invalid service")
)

// ValidationErrors ошибки валидации по полям: поле -> сообщение
type ValidationErrors map[string]string

// Add добавляет ошибку для поля, если для него ещё нет ошибки
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// Has возвращает true, если для поля есть ошибка
func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Empty возвращает true, если ошибок нет
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}

// Wrap возвращает nil, если ошибок нет, иначе sentinel, обёрнутый вместе с полями
// Поля достаются через FieldsOf
func (v ValidationErrors) Wrap(sentinel error) error {
	if v.Empty() {
		return nil
	}
	return &FieldError{Kind: sentinel, Fields: v}
}

// FieldError ошибка валидации с привязкой к полям
type FieldError struct {
	Kind   error
	Fields ValidationErrors
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Fields)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

// FieldsOf достаёт ошибки полей из цепочки ошибок
func FieldsOf(err error) (ValidationErrors, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Fields, true
	}
	return nil, false
}
