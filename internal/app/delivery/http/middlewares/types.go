package middlewares

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log               *zap.Logger
	AuthUsecase       contracts.AuthUsecase
	AuthorizationGate contracts.AuthorizationGate
	InternalConfig    *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	authUsecase contracts.AuthUsecase,
	authorizationGate contracts.AuthorizationGate,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:               logger,
		AuthUsecase:       authUsecase,
		AuthorizationGate: authorizationGate,
		InternalConfig:    internalConfig,
	}
}
