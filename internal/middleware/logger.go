package middleware

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type loggerKey struct{}

// RequestID returns the Lambda request ID carried by ctx, or a fresh UUID when
// running outside Lambda.
func RequestID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.New().String()
}

// WithLogger stores a request-scoped logger in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the request-scoped logger, or fallback when none is set.
func LoggerFrom(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	if fallback == nil {
		return zap.NewNop()
	}
	return fallback
}

// Logger wraps a Lambda handler: it tags the logger with the request ID, logs
// latency for each invocation, and turns a panic into a returned error.
func Logger[In, Out any](logger *zap.Logger, function string, next func(context.Context, In) (Out, error)) func(context.Context, In) (Out, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, in In) (out Out, err error) {
		start := time.Now()
		reqLogger := logger.With(
			zap.String("request_id", RequestID(ctx)),
			zap.String("function", function),
		)
		ctx = WithLogger(ctx, reqLogger)

		defer func() {
			if r := recover(); r != nil {
				err = eris.Errorf("panic in %s: %v", function, r)
				reqLogger.Error("recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
			}
			reqLogger.Info("invocation finished",
				zap.Duration("latency", time.Since(start)),
				zap.Bool("failed", err != nil),
			)
		}()

		return next(ctx, in)
	}
}
