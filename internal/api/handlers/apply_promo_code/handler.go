package apply_promo_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SeatBooking/internal/service/entitlements"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgPromoNotFound      = "промокод не найден"
)

type Handler struct {
	useCase ApplyPromoCodeUseCase
	logger  Logger
}

func NewHandler(useCase ApplyPromoCodeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/promo-codes/apply
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /promo-codes/apply - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ApplyPromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promo-codes/apply - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, entitlements.ErrNotFound):
			h.logger.Warn("POST /promo-codes/apply - Promo code not found: user_id=%d, code=%s", userID, req.Code)
			handlers.RespondNotFound(w, msgPromoNotFound)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("POST /promo-codes/apply - Rejected: user_id=%d, code=%s, error=%v", userID, req.Code, err)
				return
			}
			h.logger.Error("POST /promo-codes/apply - Failed to apply promo code: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promo-codes/apply - Promo code applied: user_id=%d, code=%s, discount=%.2f",
		userID, result.Code, result.DiscountAmount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
