package models

import "time"

// AxisStatusSnapshot - публикуемое состояние оси.
// IsHomed и IsServoOn равны nil, если публикация несет только позицию.
type AxisStatusSnapshot struct {
	CardID    int16     `json:"card_id"`
	Axis      int       `json:"axis"`
	Position  float64   `json:"position"`
	IsHomed   *bool     `json:"is_homed,omitempty"`
	IsServoOn *bool     `json:"is_servo_on,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// MotionPhase - этап выполнения операции движения на оси.
type MotionPhase string

const (
	PhaseIdle     MotionPhase = "idle"
	PhaseIssuing  MotionPhase = "issuing"
	PhasePolling  MotionPhase = "polling"
	PhaseSettling MotionPhase = "settling"
	PhaseVerified MotionPhase = "verified"
	PhaseFaulted  MotionPhase = "faulted"
)

// MotionRequest - параметры одной операции перемещения.
// FastMove и MicrostepRate принимаются, но контроллером не используются.
type MotionRequest struct {
	Axis          int     `json:"axis"`
	Speed         float64 `json:"speed"`
	Target        float64 `json:"target"`
	Absolute      bool    `json:"absolute"`
	FastMove      bool    `json:"fast_move"`
	MicrostepRate float64 `json:"microstep_rate"`
}

// AxisHomeConfig - проверенные параметры поиска нуля оси. Значение неизменяемо.
type AxisHomeConfig struct {
	CardID             int16 `json:"card_id"`
	AxisIndex          int   `json:"axis_index"`
	HomeMode           int   `json:"home_mode"`
	HomeDirection      int   `json:"home_direction"`
	SearchHomeDistance int   `json:"search_home_distance"`
	HomeOffset         int   `json:"home_offset"`
	EscapeStep         int   `json:"escape_step"`
	ReverseAtOrigin    int   `json:"reverse_at_origin"`
}

// ControllerInfo описывает возможности платы.
type ControllerInfo struct {
	CardID                   int16 `json:"card_id"`
	AxisCount                int   `json:"axis_count"`
	MaxAnalogInputChannels   int   `json:"max_analog_input_channels"`
	MaxAnalogOutputChannels  int   `json:"max_analog_output_channels"`
	MaxDigitalInputChannels  int   `json:"max_digital_input_channels"`
	MaxDigitalOutputChannels int   `json:"max_digital_output_channels"`
}

// Bool возвращает указатель на значение, удобно для полей снимка.
func Bool(v bool) *bool {
	return &v
}

// ScanPoint - точка быстрого сканирования: координата оси и измеренное значение.
type ScanPoint struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
}

// SearchPoint - точка слепого поиска по двум осям.
type SearchPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}
