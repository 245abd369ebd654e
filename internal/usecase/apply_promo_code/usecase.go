package apply_promo_code

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SeatBooking/pkg/money"
)

// UseCase use case проверки промокода для бронирования
type UseCase struct {
	entitlements EntitlementLoader
	quoter       Quoter
	rules        domain.WindowRules
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(entitlements EntitlementLoader, quoter Quoter, rules domain.WindowRules, logger Logger) *UseCase {
	return &UseCase{
		entitlements: entitlements,
		quoter:       quoter,
		rules:        rules,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute находит промокод, проверяет его применимость и считает скидку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	code := strings.TrimSpace(req.Code)

	uc.logger.Info("ApplyPromoCode: user=%d, code=%s", req.UserID, code)

	// 1. Валидация входных данных
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if err := uc.rules.Validate(req.Window, now); err != nil {
		return nil, err
	}
	if err := req.Party.Validate(); err != nil {
		return nil, err
	}

	// 2. Промокод с числом использований пользователем
	entitlement, err := uc.entitlements.Load(ctx, req.UserID, &domain.Selection{
		Kind: domain.EntitlementPromoCode,
		Code: code,
	})
	if err != nil {
		uc.logger.Warn("ApplyPromoCode: failed to load code=%s: %v", code, err)
		return nil, err
	}
	promo, ok := entitlement.(domain.PromoCode)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected entitlement %T", ErrInternal, entitlement)
	}

	// 3. Проверка применимости и расчёт
	result, err := uc.quoter.Quote(ctx, pricing.QuoteInput{
		Now:         now,
		MemberType:  req.MemberType,
		Window:      req.Window,
		Party:       req.Party,
		Entitlement: promo,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("ApplyPromoCode: failed to quote: %v", err)
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}
	if result.Cleared {
		uc.logger.Info("ApplyPromoCode: code=%s rejected for user=%d: %s", code, req.UserID, result.Notice)
		return nil, fmt.Errorf("%w: %s", ErrPromoNotEligible, result.Notice)
	}

	q := result.Quote
	return &Response{
		PromoID:        promo.ID,
		Code:           promo.Code,
		DiscountType:   promo.DiscountType,
		BaseAmount:     q.BaseAmount,
		DiscountAmount: q.DiscountAmount,
		FinalAmount:    money.Round2(money.NonNegative(q.BaseAmount - q.DiscountAmount)),
		Quote:          q,
	}, nil
}
