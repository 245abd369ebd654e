package list_entitlements

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// UseCase use case получения доступных entitlement'ов
type UseCase struct {
	provider     EntitlementProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(provider EntitlementProvider, logger Logger) *UseCase {
	return &UseCase{
		provider:     provider,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute запрашивает пакеты, промокоды и кредиты параллельно и отбрасывает те,
// которые нельзя выбрать: исчерпанные, истёкшие или с выбранным лимитом использований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var (
		packages []domain.PackagePass
		promos   []domain.PromoCode
		credits  []domain.StoreCredit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		packages, err = uc.provider.GetUserPackages(gctx, req.UserID)
		if err != nil {
			return fmt.Errorf("packages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		promos, err = uc.provider.GetUserAvailablePromoCodes(gctx, req.UserID, now)
		if err != nil {
			return fmt.Errorf("promo codes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		credits, err = uc.provider.GetUserCredits(gctx, req.UserID)
		if err != nil {
			return fmt.Errorf("credits: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		uc.logger.Error("ListEntitlements: failed to load entitlements for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Response{
		Packages: lo.Filter(packages, func(p domain.PackagePass, _ int) bool {
			return p.IsSelectable(now)
		}),
		PromoCodes: lo.Filter(promos, func(p domain.PromoCode, _ int) bool {
			return promoSelectable(p, now)
		}),
		Credits: lo.Filter(credits, func(c domain.StoreCredit, _ int) bool {
			return c.IsSelectable(now)
		}),
	}, nil
}

func promoSelectable(p domain.PromoCode, now time.Time) bool {
	if !p.IsActiveAt(now) {
		return false
	}
	if p.UserUsageCount >= p.MaxUsagePerUser {
		return false
	}
	return p.MaxTotalUsage == nil || p.TotalUsageCount < *p.MaxTotalUsage
}
