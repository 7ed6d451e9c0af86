package motion_service

import (
	"sync"
	"time"

	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
	"github.com/iwtcode/googolAdapter/pkg/errors"
)

type activePoll struct {
	ticker *time.Ticker
	done   chan bool
}

// PollingManager периодически вызывает UpdateStatusAll, чтобы состояние осей
// публиковалось и без выполняющихся движений.
type PollingManager struct {
	ctrl       interfaces.Controller
	logger     *logging.Logger
	active     *activePoll
	pollsMutex sync.Mutex
}

func NewPollingManager(ctrl interfaces.Controller, logger *logging.Logger) *PollingManager {
	return &PollingManager{
		ctrl:   ctrl,
		logger: logger.WithPrefix("POLLER"),
	}
}

func (pm *PollingManager) IsPollingActive() bool {
	pm.pollsMutex.Lock()
	defer pm.pollsMutex.Unlock()
	return pm.active != nil
}

func (pm *PollingManager) StartPolling(interval time.Duration) error {
	pm.pollsMutex.Lock()
	defer pm.pollsMutex.Unlock()

	if pm.active != nil {
		return errors.ErrPollingActive
	}
	pm.startPollingUnsafe(interval)
	return nil
}

func (pm *PollingManager) StopPolling() error {
	pm.pollsMutex.Lock()
	defer pm.pollsMutex.Unlock()

	if pm.active == nil {
		return errors.ErrPollingStopped
	}
	pm.stopPollingUnsafe()
	return nil
}

func (pm *PollingManager) stopPollingUnsafe() {
	if pm.active == nil {
		return
	}
	pm.active.ticker.Stop()
	pm.active.done <- true
	close(pm.active.done)
	pm.active = nil
	pm.logger.Info("Polling stopped")
}

func (pm *PollingManager) startPollingUnsafe(interval time.Duration) {
	ticker := time.NewTicker(interval)
	done := make(chan bool)
	pm.active = &activePoll{ticker: ticker, done: done}

	go func() {
		pm.logger.Info("Starting polling goroutine", "interval", interval)
		defer pm.logger.Info("Polling goroutine stopped")

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// Ошибка одного тика не останавливает опрос.
				if err := pm.ctrl.UpdateStatusAll(); err != nil {
					pm.logger.Error("Failed to update axis status", "error", err)
				}
			}
		}
	}()
}
