package txmanager

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type mongoTransactionManager struct {
	client  *mongo.Client
	enabled bool
	log     *zap.Logger
}

// NewMongoTransactionManager returns a manager that runs fn inside a
// multi-document transaction when enabled. Standalone mongod deployments do not
// support transactions, so enabled must stay false there and fn runs directly.
func NewMongoTransactionManager(client *mongo.Client, enabled bool, log *zap.Logger) contracts.TransactionManager {
	return &mongoTransactionManager{
		client:  client,
		enabled: enabled && client != nil,
		log:     log,
	}
}

func (m *mongoTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled {
		return fn(ctx)
	}

	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	session, err := m.client.StartSession()
	if err != nil {
		m.log.Error("mongoTransactionManager.WithTransaction error starting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		m.log.Error("mongoTransactionManager.WithTransaction transaction aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return err
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
