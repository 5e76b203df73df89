package payments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Database) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPayments),
	}
}

func (r *PaymentMongoRepository) CreatePayment(ctx context.Context, payment *models.Payment) (string, error) {
	if payment.ID.IsZero() {
		payment.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return payment.ID.Hex(), nil
}

// FindAll returns payments newest first with the owning patient's summary attached.
func (r *PaymentMongoRepository) FindAll(ctx context.Context, filter *requests.PaymentFilter) ([]models.Payment, error) {
	match, err := BuildPaymentFilter(filter)
	if err != nil {
		return nil, err
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: constvars.MongoFieldCreatedAt, Value: -1}}}},
	}, patientLookupStages()...)

	return r.aggregate(ctx, pipeline)
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	objectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{constvars.MongoFieldID: objectID}}},
		{{Key: "$limit", Value: 1}},
	}, patientLookupStages()...)

	payments, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, nil
	}
	return &payments[0], nil
}

func (r *PaymentMongoRepository) FindByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{constvars.MongoFieldTransactionID: transactionID})
}

func (r *PaymentMongoRepository) FindByClaimNumber(ctx context.Context, claimNumber string) (*models.Payment, error) {
	return r.findOne(ctx, bson.M{constvars.MongoFieldClaimNumber: claimNumber})
}

func (r *PaymentMongoRepository) FindCreatedSince(ctx context.Context, since time.Time) ([]models.Payment, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{constvars.MongoFieldCreatedAt: bson.M{"$gte": since}})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}

// TransitionStatus is a compare-and-set on status, so concurrent callbacks for the
// same transaction apply at most once. Only mpesa payments are matched.
func (r *PaymentMongoRepository) TransitionStatus(ctx context.Context, transactionID string, from models.PaymentStatus, set bson.M) (bool, error) {
	result, err := r.Collection.UpdateOne(ctx,
		bson.M{
			constvars.MongoFieldTransactionID: transactionID,
			constvars.MongoFieldPaymentMethod: constvars.PaymentMethodMpesa,
			constvars.MongoFieldStatus:        from,
		},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func (r *PaymentMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Payment, error) {
	var payment models.Payment
	err := r.Collection.FindOne(ctx, filter).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Payment, error) {
	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}

func patientLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constvars.MongoCollectionPatients},
			{Key: "localField", Value: constvars.MongoFieldPatient},
			{Key: "foreignField", Value: constvars.MongoFieldID},
			{Key: "as", Value: constvars.MongoFieldPatientDetails},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: bson.D{
					{Key: constvars.MongoFieldID, Value: 0},
					{Key: constvars.MongoFieldName, Value: 1},
					{Key: constvars.MongoFieldPhoneNumber, Value: 1},
					{Key: constvars.MongoFieldInsuranceProvider, Value: 1},
				}}},
			}},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + constvars.MongoFieldPatientDetails},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func BuildPaymentFilter(filter *requests.PaymentFilter) (bson.M, error) {
	query := bson.M{}
	if filter == nil {
		return query, nil
	}
	if filter.Status != "" {
		query[constvars.MongoFieldStatus] = filter.Status
	}
	if filter.PaymentMethod != "" {
		query[constvars.MongoFieldPaymentMethod] = filter.PaymentMethod
	}
	if filter.PatientID != "" {
		patientID, err := primitive.ObjectIDFromHex(filter.PatientID)
		if err != nil {
			return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.QueryParamPatientID)
		}
		query[constvars.MongoFieldPatient] = patientID
	}
	return query, nil
}
