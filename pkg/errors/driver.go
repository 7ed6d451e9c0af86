package errors

import (
	"errors"

	"github.com/iwtcode/googolAdapter/gts"
)

// FromError сопоставляет ошибку драйвера или сервиса с HTTP-ответом.
func FromError(err error) *AppError {
	var (
		appErr   *AppError
		rangeErr *gts.PortRangeError
		valueErr *gts.ValueRangeError
		missing  *gts.ConfigMissingError
		invalid  *gts.ConfigInvalidError
		cmdFault *gts.CommandFault
		axFault  *gts.AxisFault
	)
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &rangeErr), errors.As(err, &valueErr):
		return NewAppError(BadRequestCode, BadRequest, err, true)
	case errors.As(err, &missing), errors.Is(err, ErrDataNotFound):
		return NewAppError(NotFoundErrorCode, NotFound, err, true)
	case errors.As(err, &invalid):
		return NewAppError(InvalidDataCode, InvalidConfig, err, true)
	case errors.Is(err, ErrAxisBusy), errors.Is(err, ErrPollingActive), errors.Is(err, ErrPollingStopped):
		return NewAppError(ConflictErrorCode, Conflict, err, true)
	case errors.Is(err, gts.ErrUnsupported):
		return NewAppError(NotImplementedCode, NotImplemented, err, true)
	case errors.As(err, &cmdFault), errors.As(err, &axFault):
		return NewAppError(BadGatewayCode, ControllerFault, err, true)
	default:
		return NewAppError(InternalServerErrorCode, InternalServerError, err, false)
	}
}
