package requests

type STKPushPayment struct {
	PhoneNumber string  `json:"phoneNumber" validate:"required,phone_number"`
	Amount      float64 `json:"amount" validate:"required,gte=1"`
	PatientID   string  `json:"patientId" validate:"required,object_id"`
	Description string  `json:"description"`
}

type CashPayment struct {
	Amount      float64 `json:"amount" validate:"required,gte=1"`
	PatientID   string  `json:"patientId" validate:"required,object_id"`
	Description string  `json:"description"`
}

type PaymentFilter struct {
	Status        string `validate:"omitempty,oneof=pending completed failed refunded"`
	PatientID     string `validate:"omitempty,object_id"`
	PaymentMethod string `validate:"omitempty,oneof=mpesa cash insurance card"`
}

// MpesaCallback is the flattened stkCallback notification.
type MpesaCallback struct {
	MerchantRequestID  string
	CheckoutRequestID  string
	ResultCode         int64
	ResultDesc         string
	Amount             float64
	MpesaReceiptNumber string
	PhoneNumber        string
}

type MpesaSTKPush struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type PaymentEvent struct {
	EventType     string  `json:"event_type"`
	PaymentID     string  `json:"payment_id"`
	PatientID     string  `json:"patient_id"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	Status        string  `json:"status"`
	ReceiptNumber string  `json:"receipt_number,omitempty"`
	OccurredAt    string  `json:"occurred_at"`
}

// InitiatePayment dispatches to the cash, mpesa or insurance flow by PaymentMethod.
type InitiatePayment struct {
	PatientID          string   `json:"patientId" validate:"required,object_id"`
	Amount             float64  `json:"amount" validate:"required,gte=1"`
	PaymentMethod      string   `json:"paymentMethod" validate:"required,oneof=mpesa cash insurance card"`
	PhoneNumber        string   `json:"phoneNumber" validate:"required_if=PaymentMethod mpesa"`
	Description        string   `json:"description"`
	ServiceDescription string   `json:"serviceDescription" validate:"required_if=PaymentMethod insurance"`
	Documents          []string `json:"documents" validate:"omitempty,dive,base64"`
}

type MobileMoneyCharge struct {
	PhoneNumber      string
	Amount           float64
	AccountReference string
	Description      string
}
