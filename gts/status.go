package gts

// Биты слова состояния оси (GT_GetSts).
const (
	StatusServoAlarm     int32 = 0x2
	StatusFollowingError int32 = 0x10
	StatusPositiveLimit  int32 = 0x20
	StatusNegativeLimit  int32 = 0x40
	StatusSmoothStop     int32 = 0x80
	StatusEmergencyStop  int32 = 0x100
	StatusServoEnabled   int32 = 0x200
	StatusMoving         int32 = 0x400
)

// FaultKind - вид неисправности оси.
type FaultKind int

// Порядок констант совпадает с порядком проверки.
const (
	FaultServoAlarm FaultKind = iota + 1
	FaultFollowingError
	FaultPositiveLimit
	FaultNegativeLimit
	FaultEmergencyStop
	FaultServoNotEnabled
	FaultStillMoving
)

func (k FaultKind) String() string {
	switch k {
	case FaultServoAlarm:
		return "servo alarm"
	case FaultFollowingError:
		return "following error exceeded"
	case FaultPositiveLimit:
		return "positive limit triggered"
	case FaultNegativeLimit:
		return "negative limit triggered"
	case FaultEmergencyStop:
		return "emergency stop active"
	case FaultServoNotEnabled:
		return "servo not enabled"
	case FaultStillMoving:
		return "planner still moving"
	default:
		return "unknown fault"
	}
}

// IsMoving - признак незавершенного движения, условие выхода из циклов опроса.
func IsMoving(status int32) bool {
	return status&StatusMoving != 0
}

// IsServoOn сообщает, включен ли привод.
func IsServoOn(status int32) bool {
	return status&StatusServoEnabled != 0
}

// ClassifyStatus возвращает все неисправности, присутствующие в слове состояния,
// в порядке приоритета. Бит плавного останова (0x80) неисправностью не считается.
func ClassifyStatus(status int32) []FaultKind {
	var faults []FaultKind
	if status&StatusServoAlarm != 0 {
		faults = append(faults, FaultServoAlarm)
	}
	if status&StatusFollowingError != 0 {
		faults = append(faults, FaultFollowingError)
	}
	if status&StatusPositiveLimit != 0 {
		faults = append(faults, FaultPositiveLimit)
	}
	if status&StatusNegativeLimit != 0 {
		faults = append(faults, FaultNegativeLimit)
	}
	if status&StatusEmergencyStop != 0 {
		faults = append(faults, FaultEmergencyStop)
	}
	if status&StatusServoEnabled == 0 {
		faults = append(faults, FaultServoNotEnabled)
	}
	if status&StatusMoving != 0 {
		faults = append(faults, FaultStillMoving)
	}
	return faults
}

// ValidateStatus возвращает *AxisFault с первой по приоритету неисправностью
// или nil, если ось исправна и остановлена.
func ValidateStatus(card int16, axis int, status int32) error {
	faults := ClassifyStatus(status)
	if len(faults) == 0 {
		return nil
	}
	return &AxisFault{
		Kind:   faults[0],
		All:    faults,
		Status: status,
		CardID: card,
		Axis:   axis,
	}
}
