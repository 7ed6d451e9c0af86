package interfaces

import (
	"net/http"
	"time"

	"github.com/iwtcode/googolAdapter/internal/domain/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	Info() models.ControllerInfoResponse

	Home(axis int, req models.HomeRequest) (*models.Operation, error)
	Move(axis int, req models.MoveRequest) (*models.Operation, error)
	MoveAbs(axis int, req models.MoveAbsRequest) (*models.Operation, error)
	GetOperation(id string) (*models.Operation, error)
	GetAllOperations() []*models.Operation

	SetServo(axis int, on bool) error
	ResetFault(axis int) error
	SetProfile(axis int, req models.ProfileRequest) error
	RefreshStatus(axis int) error
	StopAll()

	SetDigitalOutput(port int, on bool) error
	ReadDigitalOutput(port int) (bool, error)
	ReadDigitalOutputs() ([]bool, error)
	ReadDigitalInput(port int) (bool, error)
	ReadDigitalInputs() ([]bool, error)
	ReadAnalogInput(port int) (float64, error)
	ReadAnalogOutput(port int) (float64, error)
	SetAnalogOutput(port int, value float64) error

	StartPolling(interval time.Duration) error
	StopPolling() error

	ServeStream(w http.ResponseWriter, r *http.Request) error
}
