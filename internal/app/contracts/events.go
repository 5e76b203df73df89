package contracts

import (
	"clinic-service/internal/pkg/dto/requests"
	"context"
)

type PaymentEventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event *requests.PaymentEvent) error
}
