package errors

import (
	"errors"
	"fmt"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"
	Conflict            = "conflict"
	NotImplemented      = "not implemented"
	ControllerFault     = "controller fault"
	InvalidConfig       = "invalid axis configuration"

	BadRequestCode          = 400
	NotFoundErrorCode       = 404
	ConflictErrorCode       = 409
	InvalidDataCode         = 422
	InternalServerErrorCode = 500
	NotImplementedCode      = 501
	BadGatewayCode          = 502
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

func (a *AppError) Unwrap() error {
	return a.Err
}

var (
	ErrDataNotFound   = errors.New("data not found")
	ErrAxisBusy       = errors.New("axis is busy with another motion")
	ErrPollingActive  = errors.New("status polling is already running")
	ErrPollingStopped = errors.New("status polling is not running")
	ErrInternal       = errors.New("internal error")
)
