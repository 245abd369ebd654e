package list_entitlements

import (
	"net/http"

	"github.com/m04kA/SMC-SeatBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SeatBooking/internal/api/middleware"
	listEntitlements "github.com/m04kA/SMC-SeatBooking/internal/usecase/list_entitlements"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase ListEntitlementsUseCase
	logger  Logger
}

func NewHandler(useCase ListEntitlementsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/entitlements
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.PathID(r, "userId")
	if !ok {
		h.logger.Warn("GET /users/{userId}/entitlements - Invalid user ID")
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if callerID, _ := middleware.GetUserID(r.Context()); callerID != userID {
		h.logger.Warn("GET /users/{userId}/entitlements - Access denied: caller=%d, user_id=%d", callerID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listEntitlements.Request{UserID: userID})
	if err != nil {
		h.logger.Error("GET /users/{userId}/entitlements - Failed to list entitlements: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/entitlements - Entitlements retrieved: user_id=%d, packages=%d, promos=%d, credits=%d",
		userID, len(result.Packages), len(result.PromoCodes), len(result.Credits))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
