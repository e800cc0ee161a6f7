package create_appointment

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// Поля формы в ответе с ошибками валидации
const (
	fieldClientName    = "clientName"
	fieldClientEmail   = "clientEmail"
	fieldClientPhone   = "clientPhone"
	fieldServiceID     = "serviceId"
	fieldDate          = "date"
	fieldTime          = "time"
	fieldNotes         = "notes"
	fieldPaymentMethod = "paymentMethod"
	fieldPromotionID   = "promotionId"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]+$`)
)

// ValidateForm проверяет форму записи и возвращает ошибки по полям
// now задаёт текущий день в часовом поясе салона
func ValidateForm(f Form, now time.Time) domain.ValidationErrors {
	_, errs := parseForm(f, now)
	return errs
}

// parseForm валидирует форму и приводит её к типизированному виду
func parseForm(f Form, now time.Time) (parsedForm, domain.ValidationErrors) {
	errs := domain.ValidationErrors{}
	var parsed parsedForm

	// Клиент
	name := strings.TrimSpace(f.ClientName)
	switch {
	case name == "":
		errs.Add(fieldClientName, "name is required")
	case utf8.RuneCountInString(name) > domain.MaxNameLength:
		errs.Add(fieldClientName, "name is too long")
	default:
		parsed.clientName = name
	}

	email := strings.TrimSpace(f.ClientEmail)
	switch {
	case email == "":
		errs.Add(fieldClientEmail, "email is required")
	case !emailPattern.MatchString(email):
		errs.Add(fieldClientEmail, "email is invalid")
	default:
		parsed.clientEmail = email
	}

	phone := strings.TrimSpace(f.ClientPhone)
	if phone == "" {
		errs.Add(fieldClientPhone, "phone is required")
	} else if !isValidPhone(phone) {
		errs.Add(fieldClientPhone, "phone must contain 8 to 15 digits")
	} else {
		parsed.clientPhone = phone
	}

	// Услуга
	if strings.TrimSpace(f.ServiceID) == "" {
		errs.Add(fieldServiceID, "service is required")
	} else if id, err := uuid.Parse(strings.TrimSpace(f.ServiceID)); err != nil {
		errs.Add(fieldServiceID, "service is invalid")
	} else {
		parsed.serviceID = id
	}

	// Дата и время
	if strings.TrimSpace(f.Date) == "" {
		errs.Add(fieldDate, "date is required")
	} else if date, err := time.Parse(domain.DateFormat, strings.TrimSpace(f.Date)); err != nil {
		errs.Add(fieldDate, "date must be in YYYY-MM-DD format")
	} else if isDateInPast(date, now) {
		errs.Add(fieldDate, "date cannot be in the past")
	} else {
		parsed.date = date
	}

	if strings.TrimSpace(f.Time) == "" {
		errs.Add(fieldTime, "time is required")
	} else if slot, err := types.NewTimeStringFromString(strings.TrimSpace(f.Time)); err != nil {
		errs.Add(fieldTime, "time must be in HH:MM format")
	} else {
		parsed.time = slot
	}

	// Оплата и заметки
	paymentMethod := strings.TrimSpace(f.PaymentMethod)
	if paymentMethod == "" {
		errs.Add(fieldPaymentMethod, "payment method is required")
	} else {
		parsed.paymentMethod = paymentMethod
	}

	if notes := strings.TrimSpace(f.Notes); notes != "" {
		if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
			errs.Add(fieldNotes, "notes are too long")
		} else {
			parsed.notes = &notes
		}
	}

	// Акция необязательна
	if promotionID := strings.TrimSpace(f.PromotionID); promotionID != "" {
		if id, err := uuid.Parse(promotionID); err != nil {
			errs.Add(fieldPromotionID, "promotion is invalid")
		} else {
			parsed.promotionID = &id
		}
	}

	return parsed, errs
}

// isValidPhone проверяет телефон после удаления пробелов и дефисов
func isValidPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if !phonePattern.MatchString(cleaned) {
		return false
	}
	digits := len(strings.TrimPrefix(cleaned, "+"))
	return digits >= domain.MinPhoneDigits && digits <= domain.MaxPhoneDigits
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
