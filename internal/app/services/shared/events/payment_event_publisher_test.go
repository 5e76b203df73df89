package events

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	published []amqp.Publishing
	keys      []string
	err       error
	ack       bool
	confirms  chan amqp.Confirmation
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	f.keys = append(f.keys, key)
	f.confirms <- amqp.Confirmation{DeliveryTag: uint64(len(f.published)), Ack: f.ack}
	return nil
}

func newTestPublisher(ch *fakeChannel) *paymentEventPublisher {
	return &paymentEventPublisher{
		ch:       ch,
		confirms: ch.confirms,
		queue:    "payment_events",
		log:      zap.NewNop(),
	}
}

func TestPaymentEventPublisher_PublishesPersistentJSON(t *testing.T) {
	ch := &fakeChannel{ack: true, confirms: make(chan amqp.Confirmation, 1)}
	publisher := newTestPublisher(ch)

	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	err := publisher.PublishPaymentEvent(ctx, &requests.PaymentEvent{
		EventType:     constvars.EventPaymentCompleted,
		PaymentID:     "pay-1",
		TransactionID: "ws_CO_1",
		Status:        "completed",
	})
	require.NoError(t, err)

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "payment_events", ch.keys[0])
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, constvars.MIMEApplicationJSON, msg.ContentType)
	assert.Equal(t, constvars.EventPaymentCompleted, msg.Type)

	var decoded requests.PaymentEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "ws_CO_1", decoded.TransactionID)
}

func TestPaymentEventPublisher_Nack(t *testing.T) {
	ch := &fakeChannel{ack: false, confirms: make(chan amqp.Confirmation, 1)}
	publisher := newTestPublisher(ch)

	err := publisher.PublishPaymentEvent(context.Background(), &requests.PaymentEvent{EventType: constvars.EventPaymentFailed})
	assert.Error(t, err)
}

func TestPaymentEventPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed"), confirms: make(chan amqp.Confirmation, 1)}
	publisher := newTestPublisher(ch)

	err := publisher.PublishPaymentEvent(context.Background(), &requests.PaymentEvent{EventType: constvars.EventPaymentCreated})
	assert.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestNoopPaymentEventPublisher(t *testing.T) {
	publisher := NewNoopPaymentEventPublisher(zap.NewNop())
	assert.NoError(t, publisher.PublishPaymentEvent(context.Background(), &requests.PaymentEvent{EventType: constvars.EventPaymentCreated}))
}
