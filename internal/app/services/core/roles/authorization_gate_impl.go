package roles

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"go.uber.org/zap"
)

//go:embed policy/rbac_model.conf
var rbacModel string

//go:embed policy/rbac_policy.csv
var rbacPolicy string

type authorizationGate struct {
	enforcer *casbin.Enforcer
	log      *zap.Logger
}

// NewAuthorizationGate builds an in-memory enforcer from the embedded policy table.
func NewAuthorizationGate(logger *zap.Logger) (contracts.AuthorizationGate, error) {
	enforcer, err := NewEnforcer(rbacModel, rbacPolicy)
	if err != nil {
		return nil, err
	}
	return &authorizationGate{enforcer: enforcer, log: logger}, nil
}

// NewEnforcer loads "p, subject, object" lines; # comments are skipped by the adapter.
func NewEnforcer(modelText, policyText string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, stringadapter.NewAdapter(policyText))
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return enforcer, nil
}

func (g *authorizationGate) Authorize(ctx context.Context, caller *models.Caller, operation string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if caller == nil || caller.Role == "" {
		g.log.Warn("authorizationGate.Authorize no caller identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
		)
		return exceptions.ErrCallerMissing(nil)
	}

	allowed, err := g.enforcer.Enforce(caller.Role, operation)
	if err != nil {
		g.log.Error("authorizationGate.Authorize error evaluating policy",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrPolicyEvaluation(err)
	}

	if !allowed {
		g.log.Warn("authorizationGate.Authorize operation denied",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, caller.UserID),
			zap.String(constvars.LoggingRoleKey, caller.Role),
			zap.String(constvars.LoggingOperationKey, operation),
		)
		return exceptions.ErrForbiddenOperation(nil, caller.Role, operation)
	}
	return nil
}
