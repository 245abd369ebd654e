package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeatBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// Repository репозиторий локаций и их мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория локаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSeatIDs возвращает все места локации.
// Для несуществующей локации возвращается ErrLocationNotFound.
func (r *Repository) GetSeatIDs(ctx context.Context, locationID int64) ([]string, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if err := r.checkExists(ctx, executor, locationID); err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Select("id").
		From("seats").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSeatIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	seatIDs := make([]string, 0)
	for rows.Next() {
		var seatID string
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("%w: GetSeatIDs - scan row: %v", ErrScanRow, err)
		}
		seatIDs = append(seatIDs, seatID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSeatIDs - rows error: %v", ErrScanRow, err)
	}

	return seatIDs, nil
}

func (r *Repository) checkExists(ctx context.Context, executor DBExecutor, locationID int64) error {
	query, args, err := psqlbuilder.Select("1").
		From("locations").
		Where(squirrel.Eq{"id": locationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: checkExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLocationNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: checkExists - scan row: %v", ErrScanRow, err)
	}
	return nil
}
