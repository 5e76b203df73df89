package requests

import "clinic-service/internal/app/models"

type CreatePatient struct {
	Name              string                     `json:"name" validate:"required"`
	Age               *int                       `json:"age" validate:"required,gte=0,lte=150"`
	Gender            string                     `json:"gender" validate:"required,oneof=male female other"`
	PhoneNumber       string                     `json:"phoneNumber" validate:"required,phone_number"`
	Address           string                     `json:"address"`
	NationalID        string                     `json:"nationalId"`
	Sickness          string                     `json:"sickness" validate:"required"`
	Symptoms          []string                   `json:"symptoms"`
	Diagnosis         string                     `json:"diagnosis"`
	MedicalHistory    []models.MedicalHistory    `json:"medicalHistory"`
	CurrentMedication []models.CurrentMedication `json:"currentMedication"`
	InsuranceProvider string                     `json:"insuranceProvider" validate:"omitempty,oneof=NSSF SHA Private None"`
	InsuranceNumber   string                     `json:"insuranceNumber"`
	InsuranceStatus   string                     `json:"insuranceStatus" validate:"omitempty,oneof=active inactive pending"`
	Status            string                     `json:"status" validate:"omitempty,oneof=active recovered referred deceased"`
	AssignedWorker    string                     `json:"-"`
}

// UpdatePatient only carries the fields present in the request body.
type UpdatePatient struct {
	Name              *string                     `json:"name" validate:"omitempty,min=1"`
	Age               *int                        `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender            *string                     `json:"gender" validate:"omitempty,oneof=male female other"`
	PhoneNumber       *string                     `json:"phoneNumber" validate:"omitempty,phone_number"`
	Address           *string                     `json:"address"`
	NationalID        *string                     `json:"nationalId"`
	Sickness          *string                     `json:"sickness" validate:"omitempty,min=1"`
	Symptoms          *[]string                   `json:"symptoms"`
	Diagnosis         *string                     `json:"diagnosis"`
	MedicalHistory    *[]models.MedicalHistory    `json:"medicalHistory"`
	CurrentMedication *[]models.CurrentMedication `json:"currentMedication"`
	InsuranceProvider *string                     `json:"insuranceProvider" validate:"omitempty,oneof=NSSF SHA Private None"`
	InsuranceNumber   *string                     `json:"insuranceNumber"`
	InsuranceStatus   *string                     `json:"insuranceStatus" validate:"omitempty,oneof=active inactive pending"`
	Status            *string                     `json:"status" validate:"omitempty,oneof=active recovered referred deceased"`
}

type AddVisit struct {
	Purpose    string   `json:"purpose" validate:"required"`
	Diagnosis  string   `json:"diagnosis" validate:"required"`
	Treatment  string   `json:"treatment"`
	Cost       *float64 `json:"cost" validate:"omitempty,gte=0"`
	AttendedBy string   `json:"-"`
}

type PatientFilter struct {
	Status            string `validate:"omitempty,oneof=active recovered referred deceased"`
	InsuranceProvider string `validate:"omitempty,oneof=NSSF SHA Private None"`
	Search            string
}
