package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSeatConflict возвращается, когда место уже занято пересекающимся бронированием
	ErrSeatConflict = errors.New("booking.repository: seat is held by an overlapping booking")

	// ErrStatusMismatch возвращается, когда бронирование не в ожидаемом статусе
	ErrStatusMismatch = errors.New("booking.repository: booking is not in the expected status")

	// ErrRescheduleNotAllowed возвращается, когда лимит переносов исчерпан или бронирование не подтверждено
	ErrRescheduleNotAllowed = errors.New("booking.repository: booking cannot be rescheduled")

	// ErrReschedulePending возвращается, когда у бронирования уже есть перенос, ожидающий оплаты
	ErrReschedulePending = errors.New("booking.repository: booking already has a pending reschedule")

	// ErrRescheduleNotFound возвращается, когда перенос с такой ссылкой платежа не найден
	ErrRescheduleNotFound = errors.New("booking.repository: reschedule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
