package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const operationIDKey ctxKey = "operation_id"

// WithOperation returns a context carrying a fresh operation id. Every
// CLI invocation or page flow runs under one id so its log lines can be
// correlated.
func WithOperation(ctx context.Context) context.Context {
	return context.WithValue(ctx, operationIDKey, uuid.New().String())
}

func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

func OperationIDFrom(ctx context.Context) string {
	if v := ctx.Value(operationIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with operation_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	opID := OperationIDFrom(ctx)
	if opID == "" {
		return L()
	}
	return L().With(zap.String("operation_id", opID))
}
