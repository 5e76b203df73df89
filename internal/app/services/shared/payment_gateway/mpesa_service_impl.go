package payment_gateway

import (
	"bytes"
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/requests"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// accessTokenSafetyMargin is subtracted from the provider TTL before caching.
const accessTokenSafetyMargin = 60 * time.Second

const defaultAccessTokenTTL = 50 * time.Minute

type mpesaService struct {
	Config     config.AppMpesa
	Configured bool
	Redis      contracts.RedisRepository
	Client     *http.Client
	Limiter    *rate.Limiter
	Log        *zap.Logger
	Now        func() time.Time
}

func NewMpesaService(internalConfig *config.InternalConfig, redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.MobileMoneyGateway {
	requestsPerSecond := internalConfig.Mpesa.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	timeout := time.Duration(internalConfig.Mpesa.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &mpesaService{
		Config:     internalConfig.Mpesa,
		Configured: internalConfig.MpesaConfigured(),
		Redis:      redisRepository,
		Client:     &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		Log:        logger,
		Now:        time.Now,
	}
}

func (s *mpesaService) InitiateSTKPush(ctx context.Context, request *requests.MobileMoneyCharge) (*responses.MpesaSTKPush, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("mpesaService.InitiateSTKPush called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if !s.Configured {
		s.Log.Error("mpesaService.InitiateSTKPush gateway credentials are missing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrGatewayNotConfigured(nil)
	}

	accessToken, err := s.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := utils.BuildMpesaTimestamp(s.Now())
	phoneNumber := utils.NormalizeMpesaPhoneNumber(request.PhoneNumber)
	description := request.Description
	if description == "" {
		description = constvars.MpesaDefaultDescription
	}

	transactionType := s.Config.TransactionType
	if transactionType == "" {
		transactionType = constvars.MpesaTransactionTypePayBill
	}

	body := &requests.MpesaSTKPush{
		BusinessShortCode: s.Config.ShortCode,
		Password:          utils.BuildMpesaPassword(s.Config.ShortCode, s.Config.Passkey, timestamp),
		Timestamp:         timestamp,
		TransactionType:   transactionType,
		Amount:            utils.RoundMpesaAmount(request.Amount),
		PartyA:            phoneNumber,
		PartyB:            s.Config.ShortCode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       s.callbackURL(),
		AccountReference:  request.AccountReference,
		TransactionDesc:   description,
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush error marshaling request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	if err := s.Limiter.Wait(ctx); err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush gateway throttle wait aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrServerDeadlineExceeded(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.Config.BaseUrl+constvars.MpesaSTKPushPath, bytes.NewReader(requestBody))
	if err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthBearerPrefix+accessToken)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewaySTKPush(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush error reading response body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewaySTKPush(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		gatewayErr := fmt.Errorf("stk push returned status %d", resp.StatusCode)
		s.Log.Error("mpesaService.InitiateSTKPush gateway rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingGatewayResponseKey, bodyBytes),
		)
		return nil, exceptions.ErrGatewaySTKPush(gatewayErr).WithPayload(parseGatewayPayload(bodyBytes))
	}

	var result responses.MpesaSTKPush
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		s.Log.Error("mpesaService.InitiateSTKPush error unmarshaling response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrGatewaySTKPush(err).WithPayload(parseGatewayPayload(bodyBytes))
	}

	if result.ResponseCode != constvars.MpesaResponseCodeAccepted || result.CheckoutRequestID == "" {
		gatewayErr := fmt.Errorf("stk push not accepted: %s", result.ResponseDescription)
		s.Log.Error("mpesaService.InitiateSTKPush gateway did not accept request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.ByteString(constvars.LoggingGatewayResponseKey, bodyBytes),
		)
		return nil, exceptions.ErrGatewaySTKPush(gatewayErr).WithPayload(parseGatewayPayload(bodyBytes))
	}

	s.Log.Info("mpesaService.InitiateSTKPush succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, result.CheckoutRequestID),
	)
	return &result, nil
}

// getAccessToken serves the cached OAuth token and fetches a new one on miss.
// A failing cache never blocks a payment; the token is fetched directly.
func (s *mpesaService) getAccessToken(ctx context.Context) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	cached, err := s.Redis.Get(ctx, constvars.MpesaAccessTokenRedisKey)
	if err != nil {
		s.Log.Warn("mpesaService.getAccessToken error reading cached token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if cached != "" {
		var token string
		if err := json.Unmarshal([]byte(cached), &token); err == nil && token != "" {
			return token, nil
		}
	}

	token, ttl, err := s.fetchAccessToken(ctx)
	if err != nil {
		return "", err
	}

	if err := s.Redis.Set(ctx, constvars.MpesaAccessTokenRedisKey, token, ttl); err != nil {
		s.Log.Warn("mpesaService.getAccessToken error caching token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return token, nil
}

func (s *mpesaService) fetchAccessToken(ctx context.Context) (string, time.Duration, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("mpesaService.fetchAccessToken called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, s.Config.BaseUrl+constvars.MpesaOAuthPath, nil)
	if err != nil {
		s.Log.Error("mpesaService.fetchAccessToken error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", 0, exceptions.ErrCreateHTTPRequest(err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(s.Config.ConsumerKey + ":" + s.Config.ConsumerSecret))
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthBasicPrefix+credentials)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Error("mpesaService.fetchAccessToken error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", 0, exceptions.ErrGatewayAccessToken(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, exceptions.ErrGatewayAccessToken(err)
	}

	if resp.StatusCode != constvars.StatusOK {
		gatewayErr := fmt.Errorf("oauth returned status %d", resp.StatusCode)
		s.Log.Error("mpesaService.fetchAccessToken gateway rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingGatewayResponseKey, bodyBytes),
		)
		return "", 0, exceptions.ErrGatewayAccessToken(gatewayErr).WithPayload(parseGatewayPayload(bodyBytes))
	}

	var token responses.MpesaAccessToken
	if err := json.Unmarshal(bodyBytes, &token); err != nil {
		return "", 0, exceptions.ErrGatewayAccessToken(err).WithPayload(parseGatewayPayload(bodyBytes))
	}
	if token.AccessToken == "" {
		return "", 0, exceptions.ErrGatewayAccessToken(errors.New("empty access token"))
	}

	return token.AccessToken, accessTokenTTL(token.ExpiresIn), nil
}

func (s *mpesaService) callbackURL() string {
	if s.Config.CallbackToken == "" {
		return s.Config.CallbackURL
	}
	return utils.AppendQueryParam(s.Config.CallbackURL, constvars.QueryParamCallbackToken, s.Config.CallbackToken)
}

func accessTokenTTL(expiresIn string) time.Duration {
	seconds, err := strconv.Atoi(expiresIn)
	if err != nil || seconds <= 0 {
		return defaultAccessTokenTTL
	}
	ttl := time.Duration(seconds)*time.Second - accessTokenSafetyMargin
	if ttl <= 0 {
		return time.Duration(seconds) * time.Second
	}
	return ttl
}

// parseGatewayPayload keeps the provider body as JSON when possible, raw text otherwise.
func parseGatewayPayload(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		return payload
	}
	return string(body)
}
