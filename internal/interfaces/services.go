package interfaces

import (
	"net/http"
	"time"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/internal/domain/models"
	pubmodels "github.com/iwtcode/googolAdapter/models"
)

// Controller - драйвер платы вместе с каналами публикации состояния осей.
type Controller interface {
	gts.MotionController
	Subscribe(buffer int) (<-chan pubmodels.AxisStatusSnapshot, func())
	SubscribePhases(buffer int) (<-chan gts.PhaseEvent, func())
}

// MotionService - это агрегирующий интерфейс для всей бизнес-логики.
type MotionService interface {
	OperationManager
	PollingManager
	StreamHub
	Controller() Controller
	Shutdown()
}

// OperationManager определяет контракт для асинхронных операций движения.
// На одной оси одновременно выполняется не более одной операции.
type OperationManager interface {
	StartOperation(kind models.OperationKind, axis int, run func() error) (*models.Operation, error)
	GetOperation(id string) (*models.Operation, bool)
	GetAllOperations() []*models.Operation
}

// PollingManager определяет контракт для периодического обновления состояния осей.
type PollingManager interface {
	StartPolling(interval time.Duration) error
	StopPolling() error
	IsPollingActive() bool
}

// StreamHub раздает снимки состояния клиентам websocket.
type StreamHub interface {
	ServeStream(w http.ResponseWriter, r *http.Request) error
	ClientCount() int
}
