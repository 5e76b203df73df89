package database

import (
	"clinic-service/internal/pkg/constvars"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexModels lists the indexes each collection relies on. Unique indexes back
// the duplicate checks in the repositories.
func IndexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		constvars.MongoCollectionPatients: {
			{
				Keys:    bson.D{{Key: constvars.MongoFieldNationalID, Value: 1}},
				Options: options.Index().SetName("uniq_national_id").SetUnique(true).SetSparse(true),
			},
			{
				Keys:    bson.D{{Key: constvars.MongoFieldStatus, Value: 1}, {Key: constvars.MongoFieldCreatedAt, Value: -1}},
				Options: options.Index().SetName("status_created_at"),
			},
		},
		constvars.MongoCollectionPayments: {
			{
				Keys:    bson.D{{Key: constvars.MongoFieldTransactionID, Value: 1}},
				Options: options.Index().SetName("uniq_transaction_id").SetUnique(true).SetSparse(true),
			},
			{
				Keys:    bson.D{{Key: constvars.MongoFieldClaimNumber, Value: 1}},
				Options: options.Index().SetName("claim_number").SetSparse(true),
			},
			{
				Keys:    bson.D{{Key: constvars.MongoFieldPatient, Value: 1}, {Key: constvars.MongoFieldCreatedAt, Value: -1}},
				Options: options.Index().SetName("patient_created_at"),
			},
		},
		constvars.MongoCollectionUsers: {
			{
				Keys:    bson.D{{Key: constvars.MongoFieldEmail, Value: 1}},
				Options: options.Index().SetName("uniq_email").SetUnique(true),
			},
		},
	}
}

// EnsureIndexes creates any missing index and returns the names it reported.
func EnsureIndexes(ctx context.Context, db *mongo.Database) ([]string, error) {
	var created []string
	for collection, models := range IndexModels() {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return created, fmt.Errorf("create indexes on %s: %w", collection, err)
		}
		created = append(created, names...)
	}
	return created, nil
}
