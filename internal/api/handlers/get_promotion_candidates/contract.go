package get_promotion_candidates

import (
	"context"

	getPromotionCandidates "github.com/m04kA/SMC-SalonService/internal/usecase/get_promotion_candidates"
)

type GetPromotionCandidatesUseCase interface {
	Execute(ctx context.Context, req *getPromotionCandidates.Request) (*getPromotionCandidates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
