package patients

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Database) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionPatients),
	}
}

func (r *PatientMongoRepository) CreatePatient(ctx context.Context, patient *models.Patient) (string, error) {
	if patient.ID.IsZero() {
		patient.ID = primitive.NewObjectID()
	}
	_, err := r.Collection.InsertOne(ctx, patient)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrNationalIDAlreadyExists(err, patient.NationalID)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return patient.ID.Hex(), nil
}

func (r *PatientMongoRepository) FindAll(ctx context.Context, filter *requests.PatientFilter) ([]models.Patient, error) {
	opts := options.Find().SetSort(bson.D{{Key: constvars.MongoFieldCreatedAt, Value: -1}})
	cursor, err := r.Collection.Find(ctx, BuildPatientFilter(filter), opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	patients := make([]models.Patient, 0)
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return patients, nil
}

func (r *PatientMongoRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}
	return r.findOne(ctx, bson.M{constvars.MongoFieldID: objectID})
}

func (r *PatientMongoRepository) FindByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{constvars.MongoFieldNationalID: nationalID})
}

// UpdatePatient applies a raw update document and returns the patient after the update.
func (r *PatientMongoRepository) UpdatePatient(ctx context.Context, patientID string, update bson.M) (*models.Patient, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	var patient models.Patient
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.Collection.FindOneAndUpdate(ctx, bson.M{constvars.MongoFieldID: objectID}, update, opts).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrNationalIDAlreadyExists(err, "")
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &patient, nil
}

func (r *PatientMongoRepository) PushVisit(ctx context.Context, patientID string, visit *models.Visit) (*models.Patient, error) {
	return r.UpdatePatient(ctx, patientID, bson.M{
		"$push": bson.M{constvars.MongoFieldVisits: visit},
		"$set":  bson.M{constvars.MongoFieldUpdatedAt: visit.Date},
	})
}

// AddPaymentReference is idempotent; added is false when the reference was already present
// or the patient no longer exists.
func (r *PatientMongoRepository) AddPaymentReference(ctx context.Context, patientID, paymentID string) (bool, error) {
	patientObjectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamPatientID)
	}
	paymentObjectID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}

	result, err := r.Collection.UpdateOne(ctx,
		bson.M{constvars.MongoFieldID: patientObjectID},
		bson.M{"$addToSet": bson.M{constvars.MongoFieldPayments: paymentObjectID}},
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *PatientMongoRepository) DeleteByID(ctx context.Context, patientID string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(patientID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err, constvars.URLParamID)
	}
	result, err := r.Collection.DeleteOne(ctx, bson.M{constvars.MongoFieldID: objectID})
	if err != nil {
		return false, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount > 0, nil
}

func (r *PatientMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Patient, error) {
	var patient models.Patient
	err := r.Collection.FindOne(ctx, filter).Decode(&patient)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &patient, nil
}

// BuildPatientFilter matches search case-insensitively against name, national ID and phone.
func BuildPatientFilter(filter *requests.PatientFilter) bson.M {
	query := bson.M{}
	if filter == nil {
		return query
	}
	if filter.Status != "" {
		query[constvars.MongoFieldStatus] = filter.Status
	}
	if filter.InsuranceProvider != "" {
		query[constvars.MongoFieldInsuranceProvider] = filter.InsuranceProvider
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = []bson.M{
			{constvars.MongoFieldName: pattern},
			{constvars.MongoFieldNationalID: pattern},
			{constvars.MongoFieldPhoneNumber: pattern},
		}
	}
	return query
}
