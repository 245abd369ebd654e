package entitlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
	"github.com/m04kA/SMC-SeatBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// Repository репозиторий пакетов, промокодов и кредитов пользователя
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория entitlement'ов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var packageColumns = []string{"id", "user_id", "name", "remaining_passes", "hours_allowed", "expires_at"}

var creditColumns = []string{"id", "user_id", "amount_remaining", "issued_at", "expires_at"}

var promoColumns = []string{
	"p.id",
	"p.code",
	"p.discount_type",
	"p.discount_value",
	"p.maximum_discount",
	"p.minimum_amount",
	"p.minimum_hours",
	"p.max_usage_per_user",
	"p.max_total_usage",
	"p.total_usage_count",
	"p.active_from",
	"p.active_to",
}

// GetUserPackages возвращает пакеты пользователя с оставшимися проходами
func (r *Repository) GetUserPackages(ctx context.Context, userID int64) ([]domain.PackagePass, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("package_passes").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Gt{"remaining_passes": 0}).
		OrderBy("expires_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserPackages - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserPackages - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]domain.PackagePass, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUserPackages - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUserPackages - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// GetPackage возвращает пакет пользователя по ID
func (r *Repository) GetPackage(ctx context.Context, id, userID int64) (*domain.PackagePass, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("package_passes").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPackage(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan row: %v", ErrScanRow, err)
	}
	return p, nil
}

// GetUserAvailablePromoCodes возвращает промокоды, активные в момент now, с числом использований пользователем
func (r *Repository) GetUserAvailablePromoCodes(ctx context.Context, userID int64, now time.Time) ([]domain.PromoCode, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := promoSelect(userID).
		Where(squirrel.LtOrEq{"p.active_from": now}).
		Where(squirrel.GtOrEq{"p.active_to": now}).
		OrderBy("p.active_to ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserAvailablePromoCodes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserAvailablePromoCodes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promos := make([]domain.PromoCode, 0)
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUserAvailablePromoCodes - scan row: %v", ErrScanRow, err)
		}
		promos = append(promos, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUserAvailablePromoCodes - rows error: %v", ErrScanRow, err)
	}

	return promos, nil
}

// GetPromoByCode возвращает промокод по строке кода с числом использований пользователем
func (r *Repository) GetPromoByCode(ctx context.Context, code string, userID int64) (*domain.PromoCode, error) {
	return r.getPromo(ctx, "GetPromoByCode", squirrel.Eq{"p.code": code}, userID)
}

// GetPromoByID возвращает промокод по ID с числом использований пользователем
func (r *Repository) GetPromoByID(ctx context.Context, id, userID int64) (*domain.PromoCode, error) {
	return r.getPromo(ctx, "GetPromoByID", squirrel.Eq{"p.id": id}, userID)
}

func (r *Repository) getPromo(ctx context.Context, op string, where squirrel.Sqlizer, userID int64) (*domain.PromoCode, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := promoSelect(userID).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanPromo(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
	}
	return p, nil
}

// GetUserCredits возвращает кредиты пользователя с ненулевым остатком
func (r *Repository) GetUserCredits(ctx context.Context, userID int64) ([]domain.StoreCredit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(creditColumns...).
		From("store_credits").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Gt{"amount_remaining": 0}).
		OrderBy("expires_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCredits - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCredits - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	credits := make([]domain.StoreCredit, 0)
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUserCredits - scan row: %v", ErrScanRow, err)
		}
		credits = append(credits, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUserCredits - rows error: %v", ErrScanRow, err)
	}

	return credits, nil
}

// GetCredit возвращает кредит пользователя по ID
func (r *Repository) GetCredit(ctx context.Context, id, userID int64) (*domain.StoreCredit, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(creditColumns...).
		From("store_credits").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCredit - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCredit(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCreditNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCredit - scan row: %v", ErrScanRow, err)
	}
	return c, nil
}

// ConsumePackage списывает один проход пакета.
// Списание условное: если проходов не осталось или пакет просрочен, возвращается ErrExhausted.
func (r *Repository) ConsumePackage(ctx context.Context, id int64, now time.Time) error {
	query, args, err := psqlbuilder.Update("package_passes").
		Set("remaining_passes", squirrel.Expr("remaining_passes - 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"remaining_passes": 0}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConsumePackage - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "ConsumePackage", query, args)
}

// RedeemPromo фиксирует использование промокода бронированием.
// Лимиты на пользователя и общий проверяются в том же запросе.
func (r *Repository) RedeemPromo(ctx context.Context, promoID, userID, bookingID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promo_codes").
		Set("total_usage_count", squirrel.Expr("total_usage_count + 1")).
		Where(squirrel.Eq{"id": promoID}).
		Where(squirrel.Or{
			squirrel.Eq{"max_total_usage": nil},
			squirrel.Expr("total_usage_count < max_total_usage"),
		}).
		Where(squirrel.Expr(
			"(SELECT COUNT(*) FROM promo_code_usages u WHERE u.promo_code_id = promo_codes.id AND u.user_id = ?) < max_usage_per_user",
			userID,
		)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RedeemPromo - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execConditional(ctx, "RedeemPromo", query, args); err != nil {
		return err
	}

	insertQuery, insertArgs, err := psqlbuilder.Insert("promo_code_usages").
		Columns("promo_code_id", "user_id", "booking_id").
		Values(promoID, userID, bookingID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RedeemPromo - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: RedeemPromo - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// DebitCredit списывает сумму с кредита.
// Если остатка не хватает или кредит просрочен, возвращается ErrExhausted.
func (r *Repository) DebitCredit(ctx context.Context, id int64, amount float64, now time.Time) error {
	if amount <= 0 {
		return nil
	}

	query, args, err := psqlbuilder.Update("store_credits").
		Set("amount_remaining", squirrel.Expr("amount_remaining - ?", amount)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.GtOrEq{"amount_remaining": amount}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DebitCredit - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, "DebitCredit", query, args)
}

func (r *Repository) execConditional(ctx context.Context, op string, query string, args []interface{}) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrExhausted
	}
	return nil
}

func promoSelect(userID int64) squirrel.SelectBuilder {
	return psqlbuilder.Select(promoColumns...).
		Column("(SELECT COUNT(*) FROM promo_code_usages u WHERE u.promo_code_id = p.id AND u.user_id = ?) AS user_usage_count", userID).
		From("promo_codes p")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPackage(row rowScanner) (*domain.PackagePass, error) {
	var p domain.PackagePass
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.RemainingPasses, &p.HoursAllowed, &p.ExpiresAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func scanCredit(row rowScanner) (*domain.StoreCredit, error) {
	var c domain.StoreCredit
	if err := row.Scan(&c.ID, &c.UserID, &c.AmountRemaining, &c.IssuedAt, &c.ExpiresAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanPromo(row rowScanner) (*domain.PromoCode, error) {
	var (
		p               domain.PromoCode
		maximumDiscount sql.NullFloat64
		minimumHours    sql.NullFloat64
		maxTotalUsage   sql.NullInt64
	)

	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.DiscountType,
		&p.DiscountValue,
		&maximumDiscount,
		&p.MinimumAmount,
		&minimumHours,
		&p.MaxUsagePerUser,
		&maxTotalUsage,
		&p.TotalUsageCount,
		&p.ActiveFrom,
		&p.ActiveTo,
		&p.UserUsageCount,
	)
	if err != nil {
		return nil, err
	}

	if maximumDiscount.Valid {
		p.MaximumDiscount = &maximumDiscount.Float64
	}
	if minimumHours.Valid {
		p.MinimumHours = &minimumHours.Float64
	}
	if maxTotalUsage.Valid {
		total := int(maxTotalUsage.Int64)
		p.MaxTotalUsage = &total
	}

	return &p, nil
}
