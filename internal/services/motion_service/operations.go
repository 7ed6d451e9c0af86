package motion_service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/internal/domain/models"
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
	pubmodels "github.com/iwtcode/googolAdapter/models"
	"github.com/iwtcode/googolAdapter/pkg/errors"
)

// maxOperations - сколько завершенных операций хранится для GET /operations.
const maxOperations = 1000

type OperationManager struct {
	ctrl   interfaces.Controller
	logger *logging.Logger
	mu     sync.RWMutex
	ops    map[string]*models.Operation
	order  []string
	busy   map[int]string // ось -> ID выполняющейся операции
	wg     sync.WaitGroup
}

func NewOperationManager(ctrl interfaces.Controller, logger *logging.Logger) *OperationManager {
	return &OperationManager{
		ctrl:   ctrl,
		logger: logger.WithPrefix("OPERATIONS"),
		ops:    make(map[string]*models.Operation),
		busy:   make(map[int]string),
	}
}

// StartOperation запускает run в отдельной горутине. Вторая операция на занятой оси отклоняется.
func (om *OperationManager) StartOperation(kind models.OperationKind, axis int, run func() error) (*models.Operation, error) {
	info := om.ctrl.Info()
	if axis < 1 || axis > info.AxisCount {
		return nil, &gts.PortRangeError{What: "axis", Index: axis, Max: info.AxisCount}
	}

	om.mu.Lock()
	if id, busy := om.busy[axis]; busy {
		om.mu.Unlock()
		return nil, fmt.Errorf("axis %d is running operation %s: %w", axis, id, errors.ErrAxisBusy)
	}
	op := &models.Operation{
		ID:        uuid.NewString(),
		Kind:      kind,
		CardID:    info.CardID,
		Axis:      axis,
		Status:    models.OperationRunning,
		Phase:     pubmodels.PhaseIdle,
		StartedAt: time.Now(),
	}
	om.ops[op.ID] = op
	om.order = append(om.order, op.ID)
	om.busy[axis] = op.ID
	om.trimUnsafe()
	started := *op
	om.mu.Unlock()

	om.logger.Info("Operation started", "id", op.ID, "kind", kind, "axis", axis)

	om.wg.Add(1)
	go func() {
		defer om.wg.Done()
		om.finish(op.ID, run())
	}()
	return &started, nil
}

func (om *OperationManager) finish(id string, err error) {
	om.mu.Lock()
	defer om.mu.Unlock()

	op, ok := om.ops[id]
	if !ok {
		return
	}
	now := time.Now()
	op.FinishedAt = &now
	if err != nil {
		op.Status = models.OperationFailed
		op.Phase = pubmodels.PhaseFaulted
		op.Error = err.Error()
		om.logger.Error("Operation failed", "id", id, "axis", op.Axis, "error", err)
	} else {
		op.Status = models.OperationSucceeded
		op.Phase = pubmodels.PhaseVerified
		om.logger.Info("Operation completed", "id", id, "axis", op.Axis, "duration", now.Sub(op.StartedAt))
	}
	if om.busy[op.Axis] == id {
		delete(om.busy, op.Axis)
	}
}

// trackPhases переносит этапы движения в выполняющуюся операцию оси.
func (om *OperationManager) trackPhases(events <-chan gts.PhaseEvent) {
	for ev := range events {
		om.mu.Lock()
		if op, ok := om.ops[om.busy[ev.Axis]]; ok && !op.Done() {
			op.Phase = ev.Phase
		}
		om.mu.Unlock()
	}
}

// trimUnsafe удаляет самые старые завершенные операции сверх maxOperations.
func (om *OperationManager) trimUnsafe() {
	for len(om.order) > maxOperations {
		trimmed := false
		for i, id := range om.order {
			if om.ops[id].Done() {
				delete(om.ops, id)
				om.order = append(om.order[:i], om.order[i+1:]...)
				trimmed = true
				break
			}
		}
		if !trimmed {
			return
		}
	}
}

func (om *OperationManager) GetOperation(id string) (*models.Operation, bool) {
	om.mu.RLock()
	defer om.mu.RUnlock()
	op, ok := om.ops[id]
	if !ok {
		return nil, false
	}
	cp := *op
	return &cp, true
}

func (om *OperationManager) GetAllOperations() []*models.Operation {
	om.mu.RLock()
	defer om.mu.RUnlock()
	list := make([]*models.Operation, 0, len(om.order))
	for _, id := range om.order {
		cp := *om.ops[id]
		list = append(list, &cp)
	}
	return list
}

// Wait ожидает завершения всех запущенных операций.
func (om *OperationManager) Wait() {
	om.wg.Wait()
}
