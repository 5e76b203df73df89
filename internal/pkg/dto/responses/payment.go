package responses

import "clinic-service/internal/app/models"

type STKPushInitiated struct {
	CheckoutRequestID string          `json:"checkoutRequestId"`
	MerchantRequestID string          `json:"merchantRequestId"`
	Payment           *models.Payment `json:"payment"`
}

type MpesaCallbackAck struct {
	ResultCode int    `json:"ResultCode"`
	ResultDesc string `json:"ResultDesc"`
}

type MpesaAccessToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type MpesaSTKPush struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

type PaymentInitiated struct {
	Payment           *models.Payment `json:"payment"`
	CheckoutRequestID string          `json:"checkoutRequestId,omitempty"`
	MerchantRequestID string          `json:"merchantRequestId,omitempty"`
	Claim             *ClaimSummary   `json:"claim,omitempty"`
}
