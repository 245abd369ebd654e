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

var bookingColumns = []string{
	"id",
	"reference_code",
	"user_id",
	"member_type",
	"location_id",
	"start_at",
	"end_at",
	"members",
	"tutors",
	"students",
	"base_amount",
	"discount_amount",
	"tax_amount",
	"transaction_fee",
	"total_amount",
	"payment_method",
	"payment_reference",
	"payment_confirmed",
	"payment_attempts",
	"status",
	"entitlement_kind",
	"entitlement_id",
	"entitlement_amount",
	"entitlement_hours",
	"reschedule_count",
	"reschedule_cost",
	"credit_amount",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и занятыми местами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование и занимает его места.
// Вызывается внутри сериализуемой транзакции: пересекающиеся места блокируются (FOR UPDATE),
// и если хотя бы одно место занято другим активным бронированием, возвращается ErrSeatConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	if err := r.lockConflicts(ctx, executor, booking.LocationID, booking.Window, booking.SeatIDs, nil); err != nil {
		return nil, err
	}

	entKind, entID, entAmount, entHours := entitlementColumns(booking.Entitlement)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference_code",
			"user_id",
			"member_type",
			"location_id",
			"start_at",
			"end_at",
			"members",
			"tutors",
			"students",
			"base_amount",
			"discount_amount",
			"tax_amount",
			"transaction_fee",
			"total_amount",
			"payment_method",
			"status",
			"entitlement_kind",
			"entitlement_id",
			"entitlement_amount",
			"entitlement_hours",
		).
		Values(
			booking.ReferenceCode,
			booking.UserID,
			booking.MemberType,
			booking.LocationID,
			booking.Window.Start,
			booking.Window.End,
			booking.Party.Members,
			booking.Party.Tutors,
			booking.Party.Students,
			booking.BaseAmount,
			booking.DiscountAmount,
			booking.TaxAmount,
			booking.TransactionFee,
			booking.TotalAmount,
			booking.PaymentMethod,
			booking.Status,
			entKind,
			entID,
			entAmount,
			entHours,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertSeats(ctx, executor, booking.ID, booking.LocationID, booking.Window, booking.SeatIDs); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с местами.
// Внутри транзакции строка бронирования блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	seatIDs, err := r.getSeatIDs(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	booking.SeatIDs = seatIDs

	return booking, nil
}

// GetByUserID возвращает бронирования пользователя, новые первыми.
// Если status указан, возвращаются только бронирования с этим статусом.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	for _, booking := range bookings {
		seatIDs, err := r.getSeatIDs(ctx, executor, booking.ID)
		if err != nil {
			return nil, err
		}
		booking.SeatIDs = seatIDs
	}

	return bookings, nil
}

// GetBookedSeats возвращает места активных бронирований, пересекающихся с окном.
// Бронирование excludeBookingID (если указано) не учитывается.
func (r *Repository) GetBookedSeats(ctx context.Context, locationID int64, window domain.TimeWindow, excludeBookingID *int64) ([]domain.SeatHold, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := overlapping(locationID, window, excludeBookingID).
		OrderBy("bs.seat_id ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSeats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSeats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]domain.SeatHold, 0)
	for rows.Next() {
		var hold domain.SeatHold
		if err := rows.Scan(&hold.SeatID, &hold.BookingID); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSeats - scan hold: %v", ErrScanRow, err)
		}
		holds = append(holds, hold)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSeats - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// UpdateStatus переводит бронирование из статуса from в статус to.
// Если бронирование уже не в статусе from, возвращается ErrStatusMismatch.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatus", id, query, args)
}

// Reopen возвращает бронирование из failed в payment_pending.
// Пока бронирование было failed, его места считались свободными, поэтому они
// блокируются и проверяются заново; занятые места дают ErrSeatConflict.
// Вызывается внутри сериализуемой транзакции.
func (r *Repository) Reopen(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != domain.StatusFailed {
		return fmt.Errorf("%w: Reopen - status is %s", ErrStatusMismatch, current.Status)
	}

	if err := r.lockConflicts(ctx, executor, current.LocationID, current.Window, current.SeatIDs, &id); err != nil {
		return err
	}

	return r.UpdateStatus(ctx, id, domain.StatusFailed, domain.StatusPaymentPending)
}

// NextPaymentAttempt увеличивает счётчик платёжных попыток бронирования и возвращает новый номер
func (r *Repository) NextPaymentAttempt(ctx context.Context, id int64) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_attempts", squirrel.Expr("payment_attempts + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING payment_attempts").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: NextPaymentAttempt - build update query: %v", ErrBuildQuery, err)
	}

	var attempt int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&attempt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrBookingNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: NextPaymentAttempt - scan row: %v", ErrScanRow, err)
	}

	return attempt, nil
}

// SavePayment сохраняет котировку, способ оплаты, ссылку платежа и статус payment_pending
func (r *Repository) SavePayment(ctx context.Context, booking *domain.Booking) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	entKind, entID, entAmount, entHours := entitlementColumns(booking.Entitlement)

	query, args, err := psqlbuilder.Update("bookings").
		Set("base_amount", booking.BaseAmount).
		Set("discount_amount", booking.DiscountAmount).
		Set("tax_amount", booking.TaxAmount).
		Set("transaction_fee", booking.TransactionFee).
		Set("total_amount", booking.TotalAmount).
		Set("payment_method", booking.PaymentMethod).
		Set("payment_reference", booking.PaymentReference).
		Set("status", booking.Status).
		Set("entitlement_kind", entKind).
		Set("entitlement_id", entID).
		Set("entitlement_amount", entAmount).
		Set("entitlement_hours", entHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Where(squirrel.NotEq{"status": domain.StatusConfirmed}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SavePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SavePayment", booking.ID, query, args)
}

// Confirm подтверждает оплаченное бронирование.
// Повторный вызов для уже подтверждённого бронирования возвращает его без изменений.
func (r *Repository) Confirm(ctx context.Context, id int64, reference string) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_confirmed", true).
		Set("payment_reference", reference).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPaymentPending}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execOne(ctx, executor, "Confirm", id, query, args); err != nil {
		if !errors.Is(err, ErrStatusMismatch) {
			return nil, err
		}
		current, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		if current.Status != domain.StatusConfirmed {
			return nil, fmt.Errorf("%w: Confirm - status is %s", ErrStatusMismatch, current.Status)
		}
		return current, nil
	}

	return r.GetByID(ctx, id)
}

// ApplyReschedule применяет перенос одним изменением: окно, места, стоимость переноса и кредит.
// Разрешён только для подтверждённого бронирования, которое ещё не переносилось.
func (r *Repository) ApplyReschedule(ctx context.Context, id int64, patch domain.ReschedulePatch) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.lockConflicts(ctx, executor, current.LocationID, patch.Window, patch.SeatIDs, &id); err != nil {
		return nil, err
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_at", patch.Window.Start).
		Set("end_at", patch.Window.End).
		Set("reschedule_count", squirrel.Expr("reschedule_count + 1")).
		Set("reschedule_cost", patch.RescheduleCost).
		Set("credit_amount", squirrel.Expr("credit_amount + ?", patch.CreditAmount)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"reschedule_count": domain.MaxReschedules}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ApplyReschedule - build update query: %v", ErrBuildQuery, err)
	}

	if err := r.execOne(ctx, executor, "ApplyReschedule", id, query, args); err != nil {
		if errors.Is(err, ErrStatusMismatch) {
			return nil, ErrRescheduleNotAllowed
		}
		return nil, err
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("booking_seats").
		Where(squirrel.Eq{"booking_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ApplyReschedule - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: ApplyReschedule - delete seats: %v", ErrExecQuery, err)
	}

	if err := r.insertSeats(ctx, executor, id, current.LocationID, patch.Window, patch.SeatIDs); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// overlapping строит выборку мест активных бронирований, пересекающихся с окном.
// Касающиеся окна (конец одного равен началу другого) не пересекаются.
func overlapping(locationID int64, window domain.TimeWindow, excludeBookingID *int64) squirrel.SelectBuilder {
	activeStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		activeStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("bs.seat_id", "bs.booking_id").
		From("booking_seats bs").
		Join("bookings b ON b.id = bs.booking_id").
		Where(squirrel.Eq{"bs.location_id": locationID}).
		Where(squirrel.Lt{"bs.start_at": window.End}).
		Where(squirrel.Gt{"bs.end_at": window.Start}).
		Where(squirrel.Eq{"b.status": activeStatuses})

	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"bs.booking_id": *excludeBookingID})
	}

	return selectBuilder
}

// lockConflicts блокирует пересекающиеся занятые места и проверяет, что среди них нет выбранных
func (r *Repository) lockConflicts(ctx context.Context, executor DBExecutor, locationID int64, window domain.TimeWindow, seatIDs []string, excludeBookingID *int64) error {
	query, args, err := overlapping(locationID, window, excludeBookingID).
		Where(squirrel.Eq{"bs.seat_id": seatIDs}).
		Suffix("FOR UPDATE OF bs").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: lockConflicts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: lockConflicts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	taken := make([]string, 0)
	for rows.Next() {
		var seatID string
		var bookingID int64
		if err := rows.Scan(&seatID, &bookingID); err != nil {
			return fmt.Errorf("%w: lockConflicts - scan row: %v", ErrScanRow, err)
		}
		taken = append(taken, seatID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: lockConflicts - rows error: %v", ErrScanRow, err)
	}

	if len(taken) > 0 {
		return fmt.Errorf("%w: %v", ErrSeatConflict, taken)
	}
	return nil
}

func (r *Repository) insertSeats(ctx context.Context, executor DBExecutor, bookingID, locationID int64, window domain.TimeWindow, seatIDs []string) error {
	if len(seatIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("booking_seats").
		Columns("booking_id", "location_id", "seat_id", "start_at", "end_at")
	for _, seatID := range seatIDs {
		insertBuilder = insertBuilder.Values(bookingID, locationID, seatID, window.Start, window.End)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertSeats - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return fmt.Errorf("%w: insertSeats - unknown seat: %v", ErrSeatConflict, err)
		}
		if txmanager.IsSerializationFailure(err) {
			return fmt.Errorf("%w: insertSeats - concurrent booking: %v", ErrSeatConflict, err)
		}
		return fmt.Errorf("%w: insertSeats - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getSeatIDs(ctx context.Context, executor DBExecutor, bookingID int64) ([]string, error) {
	query, args, err := psqlbuilder.Select("seat_id").
		From("booking_seats").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("seat_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getSeatIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getSeatIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	seatIDs := make([]string, 0)
	for rows.Next() {
		var seatID string
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("%w: getSeatIDs - scan seat_id: %v", ErrScanRow, err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getSeatIDs - rows error: %v", ErrScanRow, err)
	}

	return seatIDs, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op string, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %s - concurrent update: %v", ErrSeatConflict, op, err)
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		if _, err := r.exists(ctx, executor, id); err != nil {
			return err
		}
		return ErrStatusMismatch
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrBookingNotFound
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan row: %v", ErrScanRow, err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking              domain.Booking
		start, end           sql.NullTime
		paymentReference     sql.NullString
		entKind              sql.NullString
		entID                sql.NullInt64
		entAmount, entHours  sql.NullFloat64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.ReferenceCode,
		&booking.UserID,
		&booking.MemberType,
		&booking.LocationID,
		&start,
		&end,
		&booking.Party.Members,
		&booking.Party.Tutors,
		&booking.Party.Students,
		&booking.BaseAmount,
		&booking.DiscountAmount,
		&booking.TaxAmount,
		&booking.TransactionFee,
		&booking.TotalAmount,
		&booking.PaymentMethod,
		&paymentReference,
		&booking.PaymentConfirmed,
		&booking.PaymentAttempts,
		&booking.Status,
		&entKind,
		&entID,
		&entAmount,
		&entHours,
		&booking.RescheduleCount,
		&booking.RescheduleCost,
		&booking.CreditAmount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Window = domain.NewTimeWindow(start.Time.UTC(), end.Time.UTC())
	if paymentReference.Valid {
		booking.PaymentReference = &paymentReference.String
	}
	if entKind.Valid {
		booking.Entitlement = &domain.EntitlementRef{
			Kind:   domain.EntitlementKind(entKind.String),
			ID:     entID.Int64,
			Amount: entAmount.Float64,
			Hours:  entHours.Float64,
		}
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func entitlementColumns(ref *domain.EntitlementRef) (kind, id, amount, hours interface{}) {
	if ref == nil {
		return nil, nil, nil, nil
	}
	return string(ref.Kind), ref.ID, ref.Amount, ref.Hours
}
