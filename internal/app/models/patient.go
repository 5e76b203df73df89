package models

import (
	"clinic-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID                primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name              string               `json:"name" bson:"name"`
	Age               int                  `json:"age" bson:"age"`
	Gender            string               `json:"gender" bson:"gender"`
	PhoneNumber       string               `json:"phoneNumber" bson:"phoneNumber"`
	Address           string               `json:"address,omitempty" bson:"address,omitempty"`
	NationalID        string               `json:"nationalId,omitempty" bson:"nationalId,omitempty"`
	Sickness          string               `json:"sickness" bson:"sickness"`
	Symptoms          []string             `json:"symptoms" bson:"symptoms"`
	Diagnosis         string               `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	MedicalHistory    []MedicalHistory     `json:"medicalHistory" bson:"medicalHistory"`
	CurrentMedication []CurrentMedication  `json:"currentMedication" bson:"currentMedication"`
	InsuranceProvider string               `json:"insuranceProvider" bson:"insuranceProvider"`
	InsuranceNumber   string               `json:"insuranceNumber,omitempty" bson:"insuranceNumber,omitempty"`
	InsuranceStatus   string               `json:"insuranceStatus" bson:"insuranceStatus"`
	AssignedWorker    string               `json:"assignedWorker,omitempty" bson:"assignedWorker,omitempty"`
	Visits            []Visit              `json:"visits" bson:"visits"`
	Payments          []primitive.ObjectID `json:"payments" bson:"payments"`
	Status            string               `json:"status" bson:"status"`
	TimeModel         `bson:",inline"`
}

type MedicalHistory struct {
	Condition     string     `json:"condition" bson:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty" bson:"diagnosedDate,omitempty"`
	Notes         string     `json:"notes,omitempty" bson:"notes,omitempty"`
}

type CurrentMedication struct {
	Name      string `json:"name" bson:"name"`
	Dosage    string `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty" bson:"frequency,omitempty"`
}

// Visit is append-only and embedded in Patient.
type Visit struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Date       time.Time          `json:"date" bson:"date"`
	Purpose    string             `json:"purpose" bson:"purpose"`
	Diagnosis  string             `json:"diagnosis" bson:"diagnosis"`
	Treatment  string             `json:"treatment,omitempty" bson:"treatment,omitempty"`
	Cost       *float64           `json:"cost,omitempty" bson:"cost,omitempty"`
	AttendedBy string             `json:"attendedBy" bson:"attendedBy"`
}

func (p *Patient) HasActiveInsurance() bool {
	return p.InsuranceProvider != "" &&
		p.InsuranceProvider != constvars.InsuranceProviderNone &&
		p.InsuranceStatus == constvars.InsuranceStatusActive
}
