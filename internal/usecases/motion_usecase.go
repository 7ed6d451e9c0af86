package usecases

import (
	"fmt"
	"net/http"
	"time"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/internal/domain/models"
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	pubmodels "github.com/iwtcode/googolAdapter/models"
	"github.com/iwtcode/googolAdapter/pkg/errors"
)

type Usecase struct {
	motionSvc interfaces.MotionService
}

func NewUsecase(motionSvc interfaces.MotionService) interfaces.Usecases {
	return &Usecase{
		motionSvc: motionSvc,
	}
}

func (u *Usecase) ctrl() interfaces.Controller {
	return u.motionSvc.Controller()
}

func (u *Usecase) Info() models.ControllerInfoResponse {
	return models.ControllerInfoResponse{
		Status:     "ok",
		Controller: u.ctrl().Info(),
		Polling:    u.motionSvc.IsPollingActive(),
		Clients:    u.motionSvc.ClientCount(),
	}
}

// Home запускает поиск нуля в фоне. Скорость дотяжки по умолчанию - gts.HomeCreepSpeed.
func (u *Usecase) Home(axis int, req models.HomeRequest) (*models.Operation, error) {
	creep := req.CreepSpeed
	if creep == 0 {
		creep = gts.HomeCreepSpeed
	}
	return u.motionSvc.StartOperation(models.OperationHome, axis, func() error {
		return u.ctrl().Home(axis, req.HiSpeed, creep)
	})
}

func (u *Usecase) Move(axis int, req models.MoveRequest) (*models.Operation, error) {
	return u.execute(models.OperationMove, pubmodels.MotionRequest{
		Axis:     axis,
		Speed:    req.Speed,
		Target:   req.Distance,
		FastMove: req.FastMove,
	})
}

func (u *Usecase) MoveAbs(axis int, req models.MoveAbsRequest) (*models.Operation, error) {
	return u.execute(models.OperationMoveAbs, pubmodels.MotionRequest{
		Axis:     axis,
		Speed:    req.Speed,
		Target:   req.Position,
		Absolute: true,
		FastMove: req.FastMove,
	})
}

func (u *Usecase) execute(kind models.OperationKind, req pubmodels.MotionRequest) (*models.Operation, error) {
	what := "distance"
	if req.Absolute {
		what = "position"
	}
	if err := gts.CheckPosition(what, req.Target); err != nil {
		return nil, err
	}
	return u.motionSvc.StartOperation(kind, req.Axis, func() error {
		return u.ctrl().Execute(req)
	})
}

func (u *Usecase) GetOperation(id string) (*models.Operation, error) {
	op, ok := u.motionSvc.GetOperation(id)
	if !ok {
		return nil, fmt.Errorf("operation %s: %w", id, errors.ErrDataNotFound)
	}
	return op, nil
}

func (u *Usecase) GetAllOperations() []*models.Operation {
	return u.motionSvc.GetAllOperations()
}

func (u *Usecase) SetServo(axis int, on bool) error {
	if on {
		return u.ctrl().ServoOn(axis)
	}
	return u.ctrl().ServoOff(axis)
}

func (u *Usecase) ResetFault(axis int) error {
	return u.ctrl().ResetFault(axis)
}

// SetProfile меняет только переданные параметры профиля.
func (u *Usecase) SetProfile(axis int, req models.ProfileRequest) error {
	if req.Acceleration == nil && req.Deceleration == nil {
		return errors.NewAppError(errors.BadRequestCode, "acceleration or deceleration is required", nil, true)
	}
	if req.Acceleration != nil {
		if err := u.ctrl().SetAcceleration(axis, *req.Acceleration); err != nil {
			return err
		}
	}
	if req.Deceleration != nil {
		return u.ctrl().SetDeceleration(axis, *req.Deceleration)
	}
	return nil
}

func (u *Usecase) RefreshStatus(axis int) error {
	return u.ctrl().UpdateStatus(axis)
}

func (u *Usecase) StopAll() {
	u.ctrl().Stop()
}

func (u *Usecase) StartPolling(interval time.Duration) error {
	return u.motionSvc.StartPolling(interval)
}

func (u *Usecase) StopPolling() error {
	return u.motionSvc.StopPolling()
}

func (u *Usecase) ServeStream(w http.ResponseWriter, r *http.Request) error {
	return u.motionSvc.ServeStream(w, r)
}
