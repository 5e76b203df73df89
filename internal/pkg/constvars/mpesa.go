package constvars

const (
	MpesaOAuthPath              = "/oauth/v1/generate?grant_type=client_credentials"
	MpesaSTKPushPath            = "/mpesa/stkpush/v1/processrequest"
	MpesaTimestampLayout        = "20060102150405"
	MpesaTransactionTypePayBill = "CustomerPayBillOnline"
	MpesaAccountReferencePrefix = "PAT"
	MpesaDefaultDescription     = "Health Service Payment"
	MpesaAccessTokenRedisKey    = "mpesa:access_token"
	MpesaResponseCodeAccepted   = "0"
	MpesaResultCodeSuccess      = 0
	MpesaCallbackAcceptedDesc   = "Accepted"
)

// Names of metadata items inside a successful stkCallback.
const (
	MpesaItemAmount        = "Amount"
	MpesaItemReceiptNumber = "MpesaReceiptNumber"
	MpesaItemPhoneNumber   = "PhoneNumber"
)

const (
	CashTransactionPrefix = "CASH"
	ClaimNumberPrefix     = "CLM"
)
