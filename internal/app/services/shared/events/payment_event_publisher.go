package events

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type paymentEventPublisher struct {
	ch       amqpPublisher
	confirms <-chan amqp.Confirmation
	queue    string
	log      *zap.Logger
	mu       sync.Mutex
}

// NewPaymentEventPublisher declares the durable events queue and enables publisher confirms.
func NewPaymentEventPublisher(conn *amqp.Connection, log *zap.Logger, queue string) (contracts.PaymentEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &paymentEventPublisher{
		ch:       ch,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		queue:    queue,
		log:      log,
	}, nil
}

func (p *paymentEventPublisher) PublishPaymentEvent(ctx context.Context, event *requests.PaymentEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("paymentEventPublisher.PublishPaymentEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.EventType),
		zap.String(constvars.LoggingPaymentIDKey, event.PaymentID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("paymentEventPublisher.PublishPaymentEvent error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Type:         event.EventType,
		MessageId:    requestID,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("paymentEventPublisher.PublishPaymentEvent error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, p.queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.queue)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queue)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queue)
	}

	p.log.Info("paymentEventPublisher.PublishPaymentEvent succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, p.queue),
	)
	return nil
}

// noopPaymentEventPublisher is used when no broker is configured.
type noopPaymentEventPublisher struct {
	log *zap.Logger
}

func NewNoopPaymentEventPublisher(log *zap.Logger) contracts.PaymentEventPublisher {
	return &noopPaymentEventPublisher{log: log}
}

func (p *noopPaymentEventPublisher) PublishPaymentEvent(ctx context.Context, event *requests.PaymentEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Debug("noopPaymentEventPublisher.PublishPaymentEvent dropped event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.EventType),
	)
	return nil
}
