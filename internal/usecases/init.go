package usecases

import "github.com/iwtcode/googolAdapter/internal/interfaces"

// UseCases - агрегатор всех use case интерфейсов
type UseCases struct {
	interfaces.Usecases
}

// NewUsecases - конструктор для UseCases
func NewUsecases(
	motionSvc interfaces.MotionService,
) interfaces.Usecases {
	return NewUsecase(motionSvc)
}
