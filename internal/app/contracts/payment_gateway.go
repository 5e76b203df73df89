package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"context"
)

type MobileMoneyGateway interface {
	InitiateSTKPush(ctx context.Context, request *requests.MobileMoneyCharge) (*responses.MpesaSTKPush, error)
}
