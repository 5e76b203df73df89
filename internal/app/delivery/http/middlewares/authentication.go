package middlewares

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into a caller and attaches it to the context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		token := utils.BearerToken(r.Header.Get(constvars.HeaderAuthorization))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		caller, err := m.AuthUsecase.ResolveCaller(r.Context(), token)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate failed to resolve caller",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := utils.ContextWithCaller(r.Context(), caller)
		ctx = context.WithValue(ctx, constvars.CONTEXT_SESSION_ID_KEY, caller.SessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission runs the authorization gate for operation before the handler.
func (m *Middlewares) RequirePermission(operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := m.AuthorizationGate.Authorize(r.Context(), utils.CallerFromContext(r.Context()), operation); err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
