package gts

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/iwtcode/googolAdapter/gts/axiscfg"
	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/sirupsen/logrus"
)

// Возможности платы GTS-800.
const (
	AxisCount                = 8
	MaxAnalogInputChannels   = 8
	MaxAnalogOutputChannels  = 1
	MaxDigitalInputChannels  = 16
	MaxDigitalOutputChannels = 16
)

// Имена файлов конфигурации по умолчанию.
const (
	DefaultConfigFile     = "gts800.cfg"
	DefaultAxisConfigFile = "Gts800_AxisCfg.json"
)

// ErrControllerConfigNotFound - нет файла настроек платы, инициализация невозможна.
var ErrControllerConfigNotFound = errors.New("controller configuration file not found")

// MotionController - набор операций драйвера, доступный вызывающему коду.
type MotionController interface {
	Info() models.ControllerInfo

	Home(axis int, hiSpeed, creepSpeed float64) error
	Move(axis int, speed, distance float64) error
	MoveAbs(axis int, speed, position float64) error
	Execute(req models.MotionRequest) error
	ServoOn(axis int) error
	ServoOff(axis int) error
	ResetFault(axis int) error
	Stop()
	SetAcceleration(axis int, acc float64) error
	SetDeceleration(axis int, dec float64) error
	UpdateStatus(axis int) error
	UpdateStatusAll() error

	SetDigitalOutput(port int, on bool) error
	ReadDigitalOutput(port int) (bool, error)
	ReadDigitalOutputs() ([]bool, error)
	ReadDigitalInput(port int) (bool, error)
	ReadDigitalInputs() ([]bool, error)
	ReadAnalogInput(port int) (float64, error)
	ReadAnalogInputs() ([]float64, error)
	ReadAnalogOutput(port int) (float64, error)
	ReadAnalogOutputs() ([]float64, error)
	SetAnalogOutput(port int, value float64) error
	AnalogOutputOn(port int) error
	AnalogOutputOff(port int) error

	// Операции без аналога в контроллере, всегда ErrUnsupported.
	AutoTouch(axis, analogInput int, threshold, distance, speed float64) error
	StartFast1D(axis int, length, interval, speed float64, analogInput int) ([]models.ScanPoint, error)
	StartFast1DDual(axis int, length, interval, speed float64, analogInputs [2]int) ([]models.ScanPoint, []models.ScanPoint, error)
	StartBlindSearch(hAxis, vAxis int, rangeSize, gap, interval, hSpeed, vSpeed float64, analogInput int) ([]models.SearchPoint, error)
}

// Controller управляет одной платой через CommandPort. Идентификатор платы
// неизменен все время жизни экземпляра.
type Controller struct {
	card           int16
	port           model.CommandPort
	axes           *axiscfg.Store
	observer       Observer
	logger         logrus.FieldLogger
	sleep          func(time.Duration)
	configFile     string
	axisConfigFile string
	homed          sync.Map
}

var _ MotionController = (*Controller)(nil)

// Option настраивает Controller.
type Option func(*Controller)

// WithObserver задает получателя снимков состояния осей.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger задает логгер.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSleep подменяет функцию ожидания (в тестах - без реальной паузы).
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Controller) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithConfigFiles задает полные пути к файлу настроек платы и файлу параметров осей.
func WithConfigFiles(configFile, axisConfigFile string) Option {
	return func(c *Controller) {
		c.configFile = configFile
		c.axisConfigFile = axisConfigFile
	}
}

// WithAxisStore задает уже загруженные параметры осей; Init тогда файл не читает.
func WithAxisStore(s *axiscfg.Store) Option {
	return func(c *Controller) {
		c.axes = s
	}
}

// NewController создает драйвер платы. Плата не открывается до вызова Init.
func NewController(card int16, port model.CommandPort, opts ...Option) *Controller {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	c := &Controller{
		card:           card,
		port:           port,
		observer:       nopObserver{},
		logger:         silent,
		sleep:          time.Sleep,
		configFile:     DefaultConfigFile,
		axisConfigFile: DefaultAxisConfigFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithField("card", card)
	return c
}

// CardID возвращает номер платы.
func (c *Controller) CardID() int16 {
	return c.card
}

// AxisStore возвращает параметры осей (пустой набор до Init).
func (c *Controller) AxisStore() *axiscfg.Store {
	if c.axes == nil {
		return axiscfg.Empty()
	}
	return c.axes
}

// Info возвращает возможности платы.
func (c *Controller) Info() models.ControllerInfo {
	return models.ControllerInfo{
		CardID:                   c.card,
		AxisCount:                AxisCount,
		MaxAnalogInputChannels:   MaxAnalogInputChannels,
		MaxAnalogOutputChannels:  MaxAnalogOutputChannels,
		MaxDigitalInputChannels:  MaxDigitalInputChannels,
		MaxDigitalOutputChannels: MaxDigitalOutputChannels,
	}
}

// Init открывает и сбрасывает плату, загружает настройки, очищает состояние осей,
// загружает параметры осей и включает привод каждой описанной оси.
func (c *Controller) Init() error {
	if err := c.check(c.port.Open(c.card, 0, 1), model.CmdOpen); err != nil {
		return err
	}
	if err := c.check(c.port.Reset(c.card), model.CmdReset); err != nil {
		return err
	}

	if _, err := os.Stat(c.configFile); err != nil {
		return fmt.Errorf("%w: %s", ErrControllerConfigNotFound, c.configFile)
	}
	if err := c.check(c.port.LoadConfig(c.card, c.configFile), model.CmdLoadConfig); err != nil {
		return err
	}
	if err := c.check(c.port.ClearStatus(c.card, 1, AxisCount), model.CmdClrSts); err != nil {
		return err
	}

	if c.axes == nil {
		store, err := axiscfg.Load(c.axisConfigFile)
		switch {
		case errors.Is(err, axiscfg.ErrConfigNotFound):
			c.logger.WithField("file", c.axisConfigFile).Warn("Axis configuration file not found, homing is unavailable")
			store = axiscfg.Empty()
		case err != nil:
			return err
		}
		c.axes = store
	}

	// Привод включается для всех описанных осей, даже не сервоосей;
	// ошибка по отдельной оси не прерывает инициализацию.
	for _, axis := range c.axes.Axes(c.card) {
		if err := c.check(c.port.AxisOn(c.card, int16(axis)), model.CmdAxisOn); err != nil {
			c.logger.WithField("axis", axis).WithError(err).Warn("Failed to enable axis during init")
		}
	}

	c.logger.WithField("axes", c.axes.Len()).Info("Controller initialized")
	return nil
}

// Close закрывает плату. Код возврата только логируется.
func (c *Controller) Close() {
	if err := c.check(c.port.Close(c.card), model.CmdClose); err != nil {
		c.logger.WithError(err).Warn("Failed to close controller")
	}
}

// SetAcceleration меняет ускорение трапециевидного профиля оси.
func (c *Controller) SetAcceleration(axis int, acc float64) error {
	return c.patchTrap(axis, func(p *model.TrapPrm) { p.Acc = acc })
}

// SetDeceleration меняет замедление трапециевидного профиля оси.
func (c *Controller) SetDeceleration(axis int, dec float64) error {
	return c.patchTrap(axis, func(p *model.TrapPrm) { p.Dec = dec })
}

func (c *Controller) patchTrap(axis int, patch func(*model.TrapPrm)) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	prm, rc := c.port.GetTrapPrm(c.card, int16(axis))
	if err := c.check(rc, model.CmdGetTrapPrm); err != nil {
		return err
	}
	patch(&prm)
	return c.check(c.port.SetTrapPrm(c.card, int16(axis), prm), model.CmdSetTrapPrm)
}

// UpdateStatus читает слово состояния и позицию оси и публикует полный снимок.
func (c *Controller) UpdateStatus(axis int) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	status, rc := c.port.GetSts(c.card, int16(axis))
	if err := c.check(rc, model.CmdGetSts); err != nil {
		return err
	}
	pos, rc := c.port.GetAxisEncPos(c.card, int16(axis))
	if err := c.check(rc, model.CmdGetAxisEncPos); err != nil {
		return err
	}
	_, homed := c.homed.Load(axis)
	c.observer.Publish(c.snapshot(axis, pos, models.Bool(homed), models.Bool(IsServoOn(status))))
	return nil
}

// UpdateStatusAll обновляет состояние всех осей платы, останавливаясь на первой ошибке.
func (c *Controller) UpdateStatusAll() error {
	for axis := 1; axis <= AxisCount; axis++ {
		if err := c.UpdateStatus(axis); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) check(rc model.Result, command string) error {
	return CheckResult(rc, command, c.card)
}

func (c *Controller) snapshot(axis int, pos float64, homed, servoOn *bool) models.AxisStatusSnapshot {
	return models.AxisStatusSnapshot{
		CardID:    c.card,
		Axis:      axis,
		Position:  pos,
		IsHomed:   homed,
		IsServoOn: servoOn,
		Timestamp: time.Now(),
	}
}

func checkAxis(axis int) error {
	if axis < 1 || axis > AxisCount {
		return &PortRangeError{What: "axis", Index: axis, Max: AxisCount}
	}
	return nil
}

func checkPort(what string, port, count int) error {
	if port < 0 || port >= count {
		return &PortRangeError{What: what, Index: port, Max: count - 1}
	}
	return nil
}
