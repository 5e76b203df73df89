package contracts

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type AuthUsecase interface {
	Register(ctx context.Context, request *requests.RegisterUser) (*responses.UserProfile, error)
	Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error)
	Logout(ctx context.Context, sessionID string) error
	ResolveCaller(ctx context.Context, bearerToken string) (*models.Caller, error)
	GetProfile(ctx context.Context, userID string) (*responses.UserProfile, error)
}

// AuthorizationGate decides whether a role may perform an operation.
type AuthorizationGate interface {
	Authorize(ctx context.Context, caller *models.Caller, operation string) error
}
