package gts

import (
	"fmt"

	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/models"
)

// Дискретные входы и выходы платы активны низким уровнем:
// включенный выход и сработавший вход соответствуют нулевому биту.

// SetDigitalOutput включает или выключает выход port (0..15).
func (c *Controller) SetDigitalOutput(port int, on bool) error {
	if err := checkPort("digital output", port, MaxDigitalOutputChannels); err != nil {
		return err
	}
	value := int16(1)
	if on {
		value = 0
	}
	return c.check(c.port.SetDoBit(c.card, model.MC_GPO, int16(port+1), value), model.CmdSetDoBit)
}

// ReadDigitalOutput возвращает состояние выхода port.
func (c *Controller) ReadDigitalOutput(port int) (bool, error) {
	if err := checkPort("digital output", port, MaxDigitalOutputChannels); err != nil {
		return false, err
	}
	raw, rc := c.port.GetDo(c.card, model.MC_GPO)
	if err := c.check(rc, model.CmdGetDo); err != nil {
		return false, err
	}
	return activeLow(raw, port), nil
}

// ReadDigitalOutputs возвращает состояние всех выходов.
func (c *Controller) ReadDigitalOutputs() ([]bool, error) {
	raw, rc := c.port.GetDo(c.card, model.MC_GPO)
	if err := c.check(rc, model.CmdGetDo); err != nil {
		return nil, err
	}
	return unpack(raw, MaxDigitalOutputChannels), nil
}

// ReadDigitalInput возвращает состояние входа port.
func (c *Controller) ReadDigitalInput(port int) (bool, error) {
	if err := checkPort("digital input", port, MaxDigitalInputChannels); err != nil {
		return false, err
	}
	raw, rc := c.port.GetDi(c.card, model.MC_GPI)
	if err := c.check(rc, model.CmdGetDi); err != nil {
		return false, err
	}
	return activeLow(raw, port), nil
}

// ReadDigitalInputs возвращает состояние всех входов.
func (c *Controller) ReadDigitalInputs() ([]bool, error) {
	raw, rc := c.port.GetDi(c.card, model.MC_GPI)
	if err := c.check(rc, model.CmdGetDi); err != nil {
		return nil, err
	}
	return unpack(raw, MaxDigitalInputChannels), nil
}

// ReadAnalogInput возвращает напряжение на входе port (0..7).
func (c *Controller) ReadAnalogInput(port int) (float64, error) {
	if err := checkPort("analog input", port, MaxAnalogInputChannels); err != nil {
		return 0, err
	}
	v, rc := c.port.GetAdc(c.card, int16(port))
	if err := c.check(rc, model.CmdGetAdc); err != nil {
		return 0, err
	}
	return v, nil
}

// ReadAnalogInputs не поддерживается: групповое чтение АЦП у платы отсутствует.
func (c *Controller) ReadAnalogInputs() ([]float64, error) {
	return nil, unsupported("ReadAnalogInputs")
}

// ReadAnalogOutput возвращает значение ЦАП канала port.
func (c *Controller) ReadAnalogOutput(port int) (float64, error) {
	if err := checkPort("analog output", port, MaxAnalogOutputChannels); err != nil {
		return 0, err
	}
	v, rc := c.port.GetDac(c.card, int16(port))
	if err := c.check(rc, model.CmdGetDac); err != nil {
		return 0, err
	}
	return float64(v), nil
}

// ReadAnalogOutputs возвращает значения всех каналов ЦАП.
func (c *Controller) ReadAnalogOutputs() ([]float64, error) {
	values := make([]float64, 0, MaxAnalogOutputChannels)
	for port := 0; port < MaxAnalogOutputChannels; port++ {
		v, err := c.ReadAnalogOutput(port)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// SetAnalogOutput записывает значение в ЦАП; дробная часть отбрасывается.
func (c *Controller) SetAnalogOutput(port int, value float64) error {
	if err := checkPort("analog output", port, MaxAnalogOutputChannels); err != nil {
		return err
	}
	dac, err := toInt16("analog output value", value)
	if err != nil {
		return err
	}
	return c.check(c.port.SetDac(c.card, int16(port), dac), model.CmdSetDac)
}

func (c *Controller) AnalogOutputOn(port int) error {
	return unsupported("AnalogOutputOn")
}

func (c *Controller) AnalogOutputOff(port int) error {
	return unsupported("AnalogOutputOff")
}

func (c *Controller) AutoTouch(axis, analogInput int, threshold, distance, speed float64) error {
	return unsupported("AutoTouch")
}

func (c *Controller) StartFast1D(axis int, length, interval, speed float64, analogInput int) ([]models.ScanPoint, error) {
	return nil, unsupported("StartFast1D")
}

func (c *Controller) StartFast1DDual(axis int, length, interval, speed float64, analogInputs [2]int) ([]models.ScanPoint, []models.ScanPoint, error) {
	return nil, nil, unsupported("StartFast1DDual")
}

func (c *Controller) StartBlindSearch(hAxis, vAxis int, rangeSize, gap, interval, hSpeed, vSpeed float64, analogInput int) ([]models.SearchPoint, error) {
	return nil, unsupported("StartBlindSearch")
}

func unsupported(op string) error {
	return fmt.Errorf("%s: %w", op, ErrUnsupported)
}

func activeLow(raw int32, port int) bool {
	return raw&(1<<port) == 0
}

func unpack(raw int32, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = activeLow(raw, i)
	}
	return out
}
