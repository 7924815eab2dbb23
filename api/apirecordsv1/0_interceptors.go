package apirecordsv1

import (
	"context"

	"github.com/fulldump/dataform/service"
)

type contextKey string

const ContextServicerKey contextKey = "dataform-servicer"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

// GetServicer panics when no servicer was injected, which RecoverFromPanic
// reports as an unexpected error.
func GetServicer(ctx context.Context) service.Servicer {
	s, ok := ctx.Value(ContextServicerKey).(service.Servicer)
	if !ok {
		panic("servicer not injected")
	}
	return s
}
