package pricing

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных котировки
	ErrInvalidInput = fmt.Errorf("%w: pricing: invalid quote input", domain.ErrValidation)

	// ErrPipelineClosed возвращается при обращении к закрытому pipeline
	ErrPipelineClosed = errors.New("pricing: pipeline is closed")

	// ErrInternal возвращается при внутренних ошибках расчёта
	ErrInternal = errors.New("pricing: internal error")
)
