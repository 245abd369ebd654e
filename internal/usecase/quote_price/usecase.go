package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/internal/service/pricing"
)

// UseCase use case расчёта цены бронирования без его создания
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

// Execute считает котировку. Неподходящий entitlement не является ошибкой:
// он снимается, а в ответе заполняется Notice.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := uc.rules.Validate(req.Window, now); err != nil {
		return nil, err
	}
	if err := req.Party.Validate(); err != nil {
		return nil, err
	}
	if req.MemberType != "" && !req.MemberType.IsValid() {
		return nil, fmt.Errorf("%w: unknown member type %q", ErrInvalidInput, req.MemberType)
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	if req.Entitlement != nil {
		if err := req.Entitlement.Validate(); err != nil {
			return nil, err
		}
	}

	// 2. Загружаем entitlement
	entitlement, err := uc.entitlements.Load(ctx, req.UserID, req.Entitlement)
	if err != nil {
		return nil, err
	}

	// 3. Котировка
	result, err := uc.quoter.Quote(ctx, pricing.QuoteInput{
		Now:           now,
		MemberType:    req.MemberType,
		Window:        req.Window,
		Party:         req.Party,
		Entitlement:   entitlement,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return nil, err
		}
		uc.logger.Error("QuotePrice: failed to quote for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to quote: %v", ErrInternal, err)
	}
	if result.Cleared {
		uc.logger.Info("QuotePrice: entitlement cleared for user=%d: %s", req.UserID, result.Notice)
	}

	return &Response{
		Quote:        result.Quote,
		Hours:        req.Window.Hours(),
		HourlyRate:   result.HourlyRate,
		AppliedHours: result.AppliedHours,
		Entitlement:  result.EntitlementRef,
		Cleared:      result.Cleared,
		Notice:       result.Notice,
	}, nil
}
