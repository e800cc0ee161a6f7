package get_promotion_candidates

import (
	"github.com/google/uuid"

	getPromotionCandidates "github.com/m04kA/SMC-SalonService/internal/usecase/get_promotion_candidates"
)

// CandidatesResponse HTTP response model
type CandidatesResponse struct {
	OriginalPrice *float64            `json:"originalPrice,omitempty"`
	Candidates    []CandidateResponse `json:"candidates"`
}

// CandidateResponse акция, которую клиент может выбрать в форме
type CandidateResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Kind            string    `json:"kind"`
	DiscountPercent int       `json:"discountPercent"`
	FinalPrice      *float64  `json:"finalPrice,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getPromotionCandidates.Response) *CandidatesResponse {
	candidates := make([]CandidateResponse, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		candidates = append(candidates, CandidateResponse{
			ID:              c.ID,
			Name:            c.Name,
			Description:     c.Description,
			Kind:            string(c.Kind),
			DiscountPercent: c.DiscountPercent,
			FinalPrice:      c.FinalPrice,
		})
	}

	return &CandidatesResponse{
		OriginalPrice: resp.OriginalPrice,
		Candidates:    candidates,
	}
}
