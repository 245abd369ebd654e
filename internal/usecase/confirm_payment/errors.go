package confirm_payment

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных параметрах callback
	ErrInvalidInput = fmt.Errorf("%w: confirm_payment: invalid callback parameters", domain.ErrValidation)

	// ErrUnknownStatus возвращается для статуса шлюза, которого нет в таблице соответствия
	ErrUnknownStatus = fmt.Errorf("%w: confirm_payment: unknown gateway status", domain.ErrValidation)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_payment: booking not found")

	// ErrReferenceMismatch возвращается, когда ссылка callback не совпадает со ссылкой бронирования
	ErrReferenceMismatch = fmt.Errorf("%w: confirm_payment: payment reference does not match the booking", domain.ErrValidation)

	// ErrRescheduleClosed возвращается, когда успех пришёл по переносу, оплата которого уже отклонена
	ErrRescheduleClosed = fmt.Errorf("%w: confirm_payment: reschedule payment was already reported as failed", domain.ErrValidation)

	// ErrConfirmation возвращается, когда оплата прошла, а сохранить подтверждение не удалось.
	// Маркер не выставляется, callback можно повторить.
	ErrConfirmation = fmt.Errorf("%w: confirm_payment: failed to store confirmation", domain.ErrConfirmation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
