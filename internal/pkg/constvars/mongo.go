package constvars

const (
	MongoCollectionPatients = "patients"
	MongoCollectionPayments = "payments"
	MongoCollectionUsers    = "users"
)

const (
	MongoFieldID                = "_id"
	MongoFieldName              = "name"
	MongoFieldNationalID        = "nationalId"
	MongoFieldPhoneNumber       = "phoneNumber"
	MongoFieldStatus            = "status"
	MongoFieldInsuranceProvider = "insuranceProvider"
	MongoFieldInsuranceNumber   = "insuranceNumber"
	MongoFieldInsuranceStatus   = "insuranceStatus"
	MongoFieldVisits            = "visits"
	MongoFieldPayments          = "payments"
	MongoFieldUpdatedAt         = "updatedAt"
	MongoFieldCreatedAt         = "createdAt"
	MongoFieldPatient           = "patient"
	MongoFieldPaymentMethod     = "paymentMethod"
	MongoFieldTransactionID     = "transactionId"
	MongoFieldReceiptNumber     = "mpesaReceiptNumber"
	MongoFieldEmail             = "email"
	MongoFieldClaimNumber       = "insuranceClaim.claimNumber"
	MongoFieldPatientDetails    = "patientDetails"
)
