package motion_service

import (
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
)

type motionService struct {
	*OperationManager
	*PollingManager
	*Hub
	ctrl         interfaces.Controller
	publisher    *publisher
	cancelPhases func()
}

var _ interfaces.MotionService = (*motionService)(nil)

// NewMotionService собирает сервис и сразу запускает публикацию состояния осей.
func NewMotionService(ctrl interfaces.Controller, producer interfaces.KafkaService, logger *logging.Logger) interfaces.MotionService {
	ops := NewOperationManager(ctrl, logger)
	hub := NewHub(logger)

	phases, cancelPhases := ctrl.SubscribePhases(subscriptionBuffer)
	go ops.trackPhases(phases)

	pub := newPublisher(ctrl, producer, hub, logger)
	pub.start()

	return &motionService{
		OperationManager: ops,
		PollingManager:   NewPollingManager(ctrl, logger),
		Hub:              hub,
		ctrl:             ctrl,
		publisher:        pub,
		cancelPhases:     cancelPhases,
	}
}

func (s *motionService) Controller() interfaces.Controller {
	return s.ctrl
}

// Shutdown останавливает опрос, дожидается операций и отключает клиентов.
func (s *motionService) Shutdown() {
	s.PollingManager.pollsMutex.Lock()
	s.PollingManager.stopPollingUnsafe()
	s.PollingManager.pollsMutex.Unlock()

	s.OperationManager.Wait()
	s.cancelPhases()
	s.publisher.stop()
	s.Hub.Close()
}
