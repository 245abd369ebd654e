package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: reschedule_booking: invalid input data", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrRescheduleNotAllowed возвращается для неподтверждённого или уже перенесённого бронирования
	ErrRescheduleNotAllowed = fmt.Errorf("%w: reschedule_booking: booking cannot be rescheduled", domain.ErrValidation)

	// ErrReschedulePending возвращается, пока предыдущий перенос ждёт оплаты
	ErrReschedulePending = fmt.Errorf("%w: reschedule_booking: previous reschedule is awaiting payment", domain.ErrConflict)

	// ErrDurationDecrease возвращается, когда новое окно короче исходного
	ErrDurationDecrease = fmt.Errorf("%w: reschedule_booking: duration cannot be decreased", domain.ErrValidation)

	// ErrIncreaseTooSmall возвращается, когда длительность увеличена меньше чем на час
	ErrIncreaseTooSmall = fmt.Errorf("%w: reschedule_booking: duration can only be increased by at least one hour", domain.ErrValidation)

	// ErrSeatsReselectRequired возвращается, когда исходные места заняты в новом окне
	ErrSeatsReselectRequired = fmt.Errorf("%w: reschedule_booking: original seats are taken, select new seats", domain.ErrConflict)

	// ErrSeatConflict возвращается, когда места заняты параллельным бронированием
	ErrSeatConflict = fmt.Errorf("%w: reschedule_booking: seats were booked by someone else", domain.ErrConflict)

	// ErrOnlyStoreCredit возвращается, когда к переносу применяется не кредит
	ErrOnlyStoreCredit = fmt.Errorf("%w: reschedule_booking: only store credit can be applied to a reschedule", domain.ErrValidation)

	// ErrPaymentMethodRequired возвращается, когда перенос требует доплаты, а способ оплаты не выбран
	ErrPaymentMethodRequired = fmt.Errorf("%w: reschedule_booking: payment method is required", domain.ErrValidation)

	// ErrPaymentRejected возвращается, когда шлюз отклонил запрос на оплату
	ErrPaymentRejected = fmt.Errorf("%w: reschedule_booking: payment request rejected by gateway", domain.ErrPaymentFailure)

	// ErrGatewayUnavailable возвращается, когда шлюз недоступен
	ErrGatewayUnavailable = errors.New("reschedule_booking: payment gateway unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
