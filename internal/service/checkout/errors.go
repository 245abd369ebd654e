package checkout

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("checkout: booking not found")

	// ErrPaymentRejected возвращается, когда шлюз отклонил запрос на оплату
	ErrPaymentRejected = fmt.Errorf("%w: checkout: payment request rejected by gateway", domain.ErrPaymentFailure)

	// ErrGatewayUnavailable возвращается, когда шлюз недоступен
	ErrGatewayUnavailable = errors.New("checkout: payment gateway unavailable")

	// ErrConfirmation возвращается, когда подтверждение не удалось сохранить
	ErrConfirmation = fmt.Errorf("%w: checkout: failed to confirm booking", domain.ErrConfirmation)

	// ErrInvalidStatus возвращается, когда бронирование нельзя оплатить в текущем статусе
	ErrInvalidStatus = fmt.Errorf("%w: checkout: booking cannot be paid in its current status", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("checkout: internal error")
)
