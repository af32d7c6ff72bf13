package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeMissingField     ErrorCode = "MISSING_FIELD"
	ErrCodeInsufficientData ErrorCode = "INSUFFICIENT_DATA"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeConflict         ErrorCode = "CONFLICT"
	ErrCodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeTooManyRequests  ErrorCode = "TOO_MANY_REQUESTS"
	ErrCodeUpstream         ErrorCode = "UPSTREAM_ERROR"
	ErrCodeModelUnavailable ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// NewWithStatus для случаев, когда один код отдаётся с разными статусами.
func NewWithStatus(code ErrorCode, status int, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: status,
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// WithCause копия ошибки с причиной. Нужна для sentinel-ошибок.
func (e *AppError) WithCause(err error) *AppError {
	cp := *e
	cp.Cause = err
	return &cp
}

// MissingField ошибка строгого режима с именем отсутствующей компетенции.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Falta la competencia requerida: "+field)
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeMissingField, ErrCodeInsufficientData:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrCodeUpstream:
		return http.StatusBadGateway
	case ErrCodeModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// As извлекает AppError из цепочки.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound)
}

func IsMissingField(err error) bool {
	return Is(err, ErrCodeMissingField)
}

func IsInsufficientData(err error) bool {
	return Is(err, ErrCodeInsufficientData)
}

var (
	ErrApplicationNotFound = New(ErrCodeNotFound, "No se encontraron datos para la candidatura proporcionada.")
	// Нет ни одной строки нужных статусов или оценок.
	ErrNoTrainingData = NewWithStatus(ErrCodeInsufficientData, http.StatusNotFound,
		"No se encontraron suficientes datos para reentrenar el modelo.")
	// Строки есть, но ни одна не полная.
	ErrNoValidTrainingData = New(ErrCodeInsufficientData,
		"No se encontraron suficientes datos válidos para reentrenar el modelo.")
	ErrRetrainInProgress = New(ErrCodeConflict, "Ya hay un reentrenamiento en curso.")
	ErrModelUnavailable  = New(ErrCodeModelUnavailable, "El modelo no está cargado.")
	ErrInvalidID         = New(ErrCodeBadRequest, "id_candidatura debe ser un número entero válido.")
	ErrUnauthorized      = New(ErrCodeUnauthorized, "Se requiere autenticación.")
	ErrForbidden         = New(ErrCodeForbidden, "Permisos insuficientes.")
	ErrTooManyRequests   = New(ErrCodeTooManyRequests, "Demasiadas solicitudes, inténtelo más tarde.")
)
