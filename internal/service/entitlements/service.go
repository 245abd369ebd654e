package entitlements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	entitlementRepo "github.com/m04kA/SMC-SeatBooking/internal/infra/storage/entitlement"
)

// Service загружает выбранные entitlement'ы и списывает их при подтверждении
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает сервис entitlement'ов
func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Load загружает entitlement по выбору пользователя. nil выбор - без скидки.
func (s *Service) Load(ctx context.Context, userID int64, sel *domain.Selection) (domain.Entitlement, error) {
	if sel == nil {
		return nil, nil
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	switch sel.Kind {
	case domain.EntitlementPackagePass:
		pass, err := s.repo.GetPackage(ctx, sel.ID, userID)
		if err != nil {
			return nil, s.mapLoadError("package pass", sel, err)
		}
		return *pass, nil

	case domain.EntitlementPromoCode:
		var (
			promo *domain.PromoCode
			err   error
		)
		if sel.ID > 0 {
			promo, err = s.repo.GetPromoByID(ctx, sel.ID, userID)
		} else {
			promo, err = s.repo.GetPromoByCode(ctx, sel.Code, userID)
		}
		if err != nil {
			return nil, s.mapLoadError("promo code", sel, err)
		}
		return *promo, nil

	case domain.EntitlementStoreCredit:
		credit, err := s.repo.GetCredit(ctx, sel.ID, userID)
		if err != nil {
			return nil, s.mapLoadError("store credit", sel, err)
		}
		credit.Requested = sel.CreditAmount
		credit.UseMax = sel.UseMax
		return *credit, nil

	default:
		return nil, fmt.Errorf("%w: %w: %q", domain.ErrValidation, domain.ErrUnknownEntitlement, sel.Kind)
	}
}

// Consume списывает применённый entitlement для бронирования.
// Должен вызываться в той же транзакции, что и подтверждение бронирования.
func (s *Service) Consume(ctx context.Context, ref *domain.EntitlementRef, userID, bookingID int64, now time.Time) error {
	if ref == nil {
		return nil
	}

	var err error
	switch ref.Kind {
	case domain.EntitlementPackagePass:
		err = s.repo.ConsumePackage(ctx, ref.ID, now)
	case domain.EntitlementPromoCode:
		err = s.repo.RedeemPromo(ctx, ref.ID, userID, bookingID)
	case domain.EntitlementStoreCredit:
		if ref.Amount <= 0 {
			return nil
		}
		err = s.repo.DebitCredit(ctx, ref.ID, ref.Amount, now)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownEntitlement, ref.Kind)
	}

	if err != nil {
		if errors.Is(err, entitlementRepo.ErrExhausted) {
			s.logger.Warn("Consume: %s id=%d exhausted for booking id=%d", ref.Kind, ref.ID, bookingID)
			return fmt.Errorf("%w: %s id=%d", ErrExhausted, ref.Kind, ref.ID)
		}
		s.logger.Error("Consume: failed to consume %s id=%d for booking id=%d: %v", ref.Kind, ref.ID, bookingID, err)
		return fmt.Errorf("%w: Consume - %v", ErrInternal, err)
	}

	s.logger.Info("Consume: %s id=%d consumed by booking id=%d", ref.Kind, ref.ID, bookingID)
	return nil
}

func (s *Service) mapLoadError(what string, sel *domain.Selection, err error) error {
	if errors.Is(err, entitlementRepo.ErrPackageNotFound) ||
		errors.Is(err, entitlementRepo.ErrPromoNotFound) ||
		errors.Is(err, entitlementRepo.ErrCreditNotFound) {
		return fmt.Errorf("%w: %s id=%d code=%q", ErrNotFound, what, sel.ID, sel.Code)
	}
	s.logger.Error("Load: failed to load %s id=%d: %v", what, sel.ID, err)
	return fmt.Errorf("%w: Load - %v", ErrInternal, err)
}
