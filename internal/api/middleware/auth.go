package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
)

// SalonIDHeader заголовок с ID салона владельца
const SalonIDHeader = "X-Salon-ID"

const (
	msgMissingSalonID = "отсутствует заголовок X-Salon-ID"
	msgInvalidSalonID = "некорректный заголовок X-Salon-ID"
	msgForbidden      = "нет доступа к салону"
)

// OwnerAuth пропускает запрос, только если X-Salon-ID совпадает с {salonId} в пути
// Заменяет отсутствующую систему аккаунтов владельцев
func OwnerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(SalonIDHeader)
		if header == "" {
			handlers.RespondUnauthorized(w, msgMissingSalonID)
			return
		}

		ownerSalonID, err := uuid.Parse(header)
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidSalonID)
			return
		}

		pathSalonID, err := uuid.Parse(mux.Vars(r)["salonId"])
		if err != nil || pathSalonID != ownerSalonID {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
