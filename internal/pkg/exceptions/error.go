package exceptions

import (
	"clinic-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

type CustomError struct {
	StatusCode    int               `json:"status_code"`
	Success       bool              `json:"success"`
	ClientMessage string            `json:"message"`
	Payload       interface{}       `json:"error,omitempty"`
	Errors        []ValidationIssue `json:"errors,omitempty"`
	DevMessage    string            `json:"dev_message,omitempty"`
	Locations     []Location        `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// WithPayload attaches a raw upstream payload that is returned to the client under "error".
func (e *CustomError) WithPayload(payload interface{}) *CustomError {
	e.Payload = payload
	return e
}

func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)

	var previous *CustomError
	if errors.As(err, &previous) {
		return &CustomError{
			StatusCode:    statusCode,
			ClientMessage: clientMessage,
			Payload:       previous.Payload,
			Errors:        previous.Errors,
			DevMessage:    fmt.Sprintf("%s: %s", devMessage, previous.DevMessage),
			Locations:     append([]Location{location}, previous.Locations...),
			cause:         err,
		}
	}

	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     []Location{location},
		cause:         err,
	}
}

// StatusCodeOf returns the HTTP status carried by err, or 500 for foreign errors.
func StatusCodeOf(err error) int {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.StatusCode
	}
	return constvars.StatusInternalServerError
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
