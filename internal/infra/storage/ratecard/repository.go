package ratecard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// Repository источник тарифов и настроек комиссий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория тарифов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetRates возвращает все записи тарифной сетки
func (r *Repository) GetRates(ctx context.Context) ([]domain.RateCardEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("member_type", "bucket", "hourly_rate").
		From("rate_cards").
		OrderBy("member_type ASC, bucket ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.RateCardEntry, 0)
	for rows.Next() {
		var e domain.RateCardEntry
		if err := rows.Scan(&e.MemberType, &e.Bucket, &e.HourlyRate); err != nil {
			return nil, fmt.Errorf("%w: GetRates - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRates - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// GetFeeSettings возвращает текущие настройки комиссий или nil, если они не заданы
func (r *Repository) GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("paynow_fixed_fee", "card_percentage", "tax_percentage").
		From("fee_settings").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeeSettings - build select query: %v", ErrBuildQuery, err)
	}

	var fees domain.FeeSettings
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&fees.PayNowFixedFee,
		&fees.CardPercentage,
		&fees.TaxPercentage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFeeSettings - scan row: %v", ErrScanRow, err)
	}

	return &fees, nil
}
