package list_entitlements

import (
	"context"

	listEntitlements "github.com/m04kA/SMC-SeatBooking/internal/usecase/list_entitlements"
)

type ListEntitlementsUseCase interface {
	Execute(ctx context.Context, req *listEntitlements.Request) (*listEntitlements.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
