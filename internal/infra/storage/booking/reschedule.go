package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

var rescheduleColumns = []string{
	"payment_reference",
	"booking_id",
	"start_at",
	"end_at",
	"seat_ids",
	"reschedule_cost",
	"credit_amount",
	"credit_id",
	"status",
	"created_at",
}

// SaveReschedule сохраняет перенос, ожидающий оплаты разницы.
// Если у бронирования уже есть ожидающий перенос, возвращается ErrReschedulePending.
func (r *Repository) SaveReschedule(ctx context.Context, pending domain.PendingReschedule) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_reschedules").
		Columns(
			"payment_reference",
			"booking_id",
			"start_at",
			"end_at",
			"seat_ids",
			"reschedule_cost",
			"credit_amount",
			"credit_id",
			"status",
		).
		Values(
			pending.Reference,
			pending.BookingID,
			pending.Patch.Window.Start,
			pending.Patch.Window.End,
			pq.Array(pending.Patch.SeatIDs),
			pending.Patch.RescheduleCost,
			pending.Patch.CreditAmount,
			pending.Patch.CreditID,
			domain.RescheduleStatusPending,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveReschedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: booking id=%d", ErrReschedulePending, pending.BookingID)
		}
		return fmt.Errorf("%w: SaveReschedule - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetReschedule возвращает перенос по ссылке платежа или ErrRescheduleNotFound
func (r *Repository) GetReschedule(ctx context.Context, reference string) (*domain.PendingReschedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(rescheduleColumns...).
		From("booking_reschedules").
		Where(squirrel.Eq{"payment_reference": reference})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetReschedule - build select query: %v", ErrBuildQuery, err)
	}

	var (
		pending    domain.PendingReschedule
		start, end sql.NullTime
		seatIDs    pq.StringArray
		creditID   sql.NullInt64
		createdAt  sql.NullTime
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pending.Reference,
		&pending.BookingID,
		&start,
		&end,
		&seatIDs,
		&pending.Patch.RescheduleCost,
		&pending.Patch.CreditAmount,
		&creditID,
		&pending.Status,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRescheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReschedule - scan row: %v", ErrScanRow, err)
	}

	pending.Patch.Window = domain.NewTimeWindow(start.Time.UTC(), end.Time.UTC())
	pending.Patch.SeatIDs = []string(seatIDs)
	if creditID.Valid {
		id := creditID.Int64
		pending.Patch.CreditID = &id
	}
	pending.CreatedAt = createdAt.Time

	return &pending, nil
}

// HasPendingReschedule проверяет, ждёт ли бронирование оплаты переноса
func (r *Repository) HasPendingReschedule(ctx context.Context, bookingID int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("booking_reschedules").
		Where(squirrel.Eq{"booking_id": bookingID, "status": domain.RescheduleStatusPending}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasPendingReschedule - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasPendingReschedule - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

// CloseReschedule переводит ожидающий перенос в статус to.
// Если перенос уже закрыт, возвращается ErrStatusMismatch.
func (r *Repository) CloseReschedule(ctx context.Context, reference string, to domain.RescheduleStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_reschedules").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"payment_reference": reference, "status": domain.RescheduleStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CloseReschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CloseReschedule - execute update: %v", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CloseReschedule - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: reschedule ref=%s is not pending", ErrStatusMismatch, reference)
	}
	return nil
}

// RecordShortfall фиксирует entitlement, который не удалось списать после успешной оплаты.
// Бронирование при этом остаётся подтверждённым.
func (r *Repository) RecordShortfall(ctx context.Context, bookingID int64, ref domain.EntitlementRef) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("entitlement_shortfalls").
		Columns("booking_id", "entitlement_kind", "entitlement_id", "amount", "hours").
		Values(bookingID, string(ref.Kind), ref.ID, ref.Amount, ref.Hours).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordShortfall - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: RecordShortfall - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}
