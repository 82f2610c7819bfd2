package obs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request identifier stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// WithRequestID stores a request identifier in ctx for downstream logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// Time logs the duration (and outcome) of the named operation when the
// returned func runs. Intended for use with defer:
//
//	defer obs.Time(ctx, logger, "viacep.Resolve")(&err)
func Time(ctx context.Context, logger *zap.Logger, name string) func(errp *error) {
	start := time.Now()

	fields := []zap.Field{zap.String("op", name)}
	if id := RequestID(ctx); id != "" {
		fields = append(fields, zap.String("req_id", id))
	}

	return func(errp *error) {
		fields := append(fields, zap.Duration("dur", time.Since(start)))

		if errp != nil && *errp != nil {
			logger.Warn("operation failed", append(fields, zap.Error(*errp))...)
			return
		}
		logger.Debug("operation done", fields...)
	}
}
