package models

import (
	"time"

	"github.com/iwtcode/googolAdapter/models"
)

// HomeRequest определяет параметры поиска нуля.
type HomeRequest struct {
	HiSpeed    float64 `json:"hi_speed" binding:"required,gt=0"`
	CreepSpeed float64 `json:"creep_speed"`
}

// MoveRequest определяет параметры относительного перемещения.
type MoveRequest struct {
	Speed    float64 `json:"speed" binding:"required,gt=0"`
	Distance float64 `json:"distance"`
	FastMove bool    `json:"fast_move"`
}

// MoveAbsRequest определяет параметры перемещения в абсолютную позицию.
type MoveAbsRequest struct {
	Speed    float64 `json:"speed" binding:"required,gt=0"`
	Position float64 `json:"position"`
	FastMove bool    `json:"fast_move"`
}

// ServoRequest включает или выключает привод оси.
type ServoRequest struct {
	On *bool `json:"on" binding:"required"`
}

// ProfileRequest задает ускорение и/или замедление трапециевидного профиля.
type ProfileRequest struct {
	Acceleration *float64 `json:"acceleration" binding:"omitempty,gt=0"`
	Deceleration *float64 `json:"deceleration" binding:"omitempty,gt=0"`
}

// DigitalOutputRequest включает или выключает дискретный выход.
type DigitalOutputRequest struct {
	On *bool `json:"on" binding:"required"`
}

// AnalogOutputRequest задает значение ЦАП.
type AnalogOutputRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// PollingRequest определяет структуру для запроса на запуск опроса состояния осей.
type PollingRequest struct {
	Interval int `json:"interval" binding:"required,gt=0"` // в миллисекундах
}

// OperationKind - вид асинхронной операции движения.
type OperationKind string

const (
	OperationHome    OperationKind = "home"
	OperationMove    OperationKind = "move"
	OperationMoveAbs OperationKind = "move_abs"
)

// OperationStatus - состояние асинхронной операции.
type OperationStatus string

const (
	OperationRunning   OperationStatus = "running"
	OperationSucceeded OperationStatus = "succeeded"
	OperationFailed    OperationStatus = "failed"
)

// Operation описывает операцию движения, выполняемую в фоне.
type Operation struct {
	ID         string             `json:"id"`
	Kind       OperationKind      `json:"kind"`
	CardID     int16              `json:"card_id"`
	Axis       int                `json:"axis"`
	Status     OperationStatus    `json:"status"`
	Phase      models.MotionPhase `json:"phase"`
	Error      string             `json:"error,omitempty"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at,omitempty"`
}

// Done сообщает, завершена ли операция.
func (o *Operation) Done() bool {
	return o.Status != OperationRunning
}

// StreamMessage - сообщение, отправляемое клиентам websocket и в Kafka.
type StreamMessage struct {
	Type     string                     `json:"type"` // snapshot / phase
	Snapshot *models.AxisStatusSnapshot `json:"snapshot,omitempty"`
	Phase    *PhaseChange               `json:"phase,omitempty"`
}

// PhaseChange - смена этапа движения оси.
type PhaseChange struct {
	CardID int16              `json:"card_id"`
	Axis   int                `json:"axis"`
	Phase  models.MotionPhase `json:"phase"`
}

const (
	StreamSnapshot = "snapshot"
	StreamPhase    = "phase"
)
