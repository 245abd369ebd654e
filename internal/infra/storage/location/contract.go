package location

import (
	"github.com/m04kA/SMC-SeatBooking/pkg/txmanager"
)

// DBExecutor общий интерфейс для *sql.DB и *sql.Tx
type DBExecutor = txmanager.DBExecutor
