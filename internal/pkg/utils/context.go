package utils

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"context"
)

// CallerFromContext returns the authenticated caller or nil.
func CallerFromContext(ctx context.Context) *models.Caller {
	caller, _ := ctx.Value(constvars.CONTEXT_CALLER_KEY).(*models.Caller)
	return caller
}

func ContextWithCaller(ctx context.Context, caller *models.Caller) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_CALLER_KEY, caller)
}
