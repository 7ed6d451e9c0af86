// Package sim содержит программную модель платы GTS, реализующую model.CommandPort.
// Используется в тестах и как backend "sim" сервиса, когда плата не подключена.
package sim

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/iwtcode/googolAdapter/gts/model"
)

const (
	// AxisCount - число осей модели.
	AxisCount = 8
	// HomePolls - сколько опросов GT_GetHomeStatus длится поиск нуля.
	HomePolls = 3

	statusServoEnabled int32 = 0x200
	statusMoving       int32 = 0x400
	statusFaultBits    int32 = 0x1FF &^ 0x80

	defaultStepPerPoll = 100.0
)

type axisState struct {
	encPos  float64
	target  int32
	vel     float64
	trap    model.TrapPrm
	home    model.HomePrm
	prfTrap bool
	moving  bool
	servoOn bool
	homing  int
	faults  int32
	script  []int32
}

// Card - модель одной или нескольких плат. Все методы потокобезопасны.
type Card struct {
	mu       sync.Mutex
	opened   map[int16]bool
	axes     map[int16]*[AxisCount + 1]axisState
	do       map[int16]int32
	di       map[int16]int32
	adc      map[int16][]float64
	dac      map[int16][]int16
	results  map[string]model.Result
	calls    []Call
	callCap  int
	stepSize float64
}

// Call - запись журнала вызовов.
type Call struct {
	Command string
	Card    int16
	Axis    int16
	Args    []interface{}
}

// New создает модель; все дискретные входы и выходы в неактивном (высоком) уровне.
func New() *Card {
	return &Card{
		opened:   map[int16]bool{},
		axes:     map[int16]*[AxisCount + 1]axisState{},
		do:       map[int16]int32{},
		di:       map[int16]int32{},
		adc:      map[int16][]float64{},
		dac:      map[int16][]int16{},
		results:  map[string]model.Result{},
		callCap:  DefaultCallLogSize,
		stepSize: defaultStepPerPoll,
	}
}

// DefaultCallLogSize - емкость журнала вызовов по умолчанию.
const DefaultCallLogSize = 4096

// SetCallLogSize ограничивает журнал вызовов n последними записями; 0 отключает журнал.
func (c *Card) SetCallLogSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n < 0 {
		n = 0
	}
	c.callCap = n
	c.trimCalls(n)
}

func (c *Card) trimCalls(keep int) {
	if len(c.calls) <= keep {
		return
	}
	n := copy(c.calls, c.calls[len(c.calls)-keep:])
	for i := n; i < len(c.calls); i++ {
		c.calls[i] = Call{}
	}
	c.calls = c.calls[:n]
}

var _ model.CommandPort = (*Card)(nil)

// SetResult заставляет команду возвращать указанный код до вызова ClearResult.
func (c *Card) SetResult(command string, rc model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[command] = rc
}

// ClearResult снимает подмену кода возврата.
func (c *Card) ClearResult(command string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, command)
}

// ScriptStatus задает последовательность слов состояния, возвращаемых GT_GetSts.
// Последнее слово повторяется, пока сценарий не будет заменен.
func (c *Card) ScriptStatus(card, axis int16, words ...int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.axis(card, axis).script = append([]int32(nil), words...)
}

// InjectFault выставляет биты неисправности оси (сбрасываются GT_ClrSts).
func (c *Card) InjectFault(card, axis int16, bits int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.axis(card, axis).faults |= bits & statusFaultBits
}

// SetStepSize задает шаг перемещения за один опрос состояния.
func (c *Card) SetStepSize(step float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if step > 0 {
		c.stepSize = step
	}
}

// SetEncoderPosition устанавливает позицию энкодера оси.
func (c *Card) SetEncoderPosition(card, axis int16, pos float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.axis(card, axis).encPos = pos
}

// SetDigitalInputs задает сырое слово дискретных входов (активный уровень - 0).
func (c *Card) SetDigitalInputs(card int16, raw int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.di[card] = raw
}

// SetAnalogInput задает напряжение на аналоговом входе.
func (c *Card) SetAnalogInput(card, channel int16, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	adc := c.adcFor(card)
	if int(channel) < len(adc) && channel >= 0 {
		adc[channel] = v
	}
}

// HomeParams возвращает последнюю запись, переданную в GT_GoHome.
func (c *Card) HomeParams(card, axis int16) model.HomePrm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.axis(card, axis).home
}

// ServoOn сообщает, включен ли привод оси.
func (c *Card) ServoOn(card, axis int16) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.axis(card, axis).servoOn
}

// Calls возвращает копию журнала вызовов.
func (c *Card) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// Commands возвращает только имена вызванных команд.
func (c *Card) Commands() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Command
	}
	return names
}

// ResetCalls очищает журнал вызовов.
func (c *Card) ResetCalls() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = nil
}

func (c *Card) axis(card, axis int16) *axisState {
	axes, ok := c.axes[card]
	if !ok {
		axes = &[AxisCount + 1]axisState{}
		c.axes[card] = axes
	}
	if axis < 1 || axis > AxisCount {
		// Недопустимые оси отображаются в нулевой слот, чтобы не паниковать.
		return &axes[0]
	}
	return &axes[axis]
}

func (c *Card) adcFor(card int16) []float64 {
	if _, ok := c.adc[card]; !ok {
		c.adc[card] = make([]float64, 8)
	}
	return c.adc[card]
}

func (c *Card) dacFor(card int16) []int16 {
	if _, ok := c.dac[card]; !ok {
		c.dac[card] = make([]int16, 1)
	}
	return c.dac[card]
}

// record заносит вызов в журнал и возвращает подмененный код, если он задан.
// При заполнении журнала отбрасывается старейшая четверть записей.
func (c *Card) record(command string, card, axis int16, args ...interface{}) model.Result {
	if c.callCap > 0 {
		if len(c.calls) >= c.callCap {
			c.trimCalls(c.callCap - c.callCap/4 - 1)
		}
		c.calls = append(c.calls, Call{Command: command, Card: card, Axis: axis, Args: args})
	}
	return c.results[command]
}

func validAxis(axis int16) bool {
	return axis >= 1 && axis <= AxisCount
}

func (c *Card) Open(card, channel, param int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdOpen, card, 0, channel, param); rc != 0 {
		return rc
	}
	c.opened[card] = true
	if _, ok := c.do[card]; !ok {
		c.do[card] = 0xFFFF
	}
	if _, ok := c.di[card]; !ok {
		c.di[card] = 0xFFFF
	}
	return 0
}

func (c *Card) Close(card int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdClose, card, 0); rc != 0 {
		return rc
	}
	delete(c.opened, card)
	return 0
}

func (c *Card) Reset(card int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdReset, card, 0); rc != 0 {
		return rc
	}
	if !c.opened[card] {
		return -6
	}
	for a := int16(1); a <= AxisCount; a++ {
		st := c.axis(card, a)
		*st = axisState{encPos: st.encPos, script: st.script}
	}
	return 0
}

func (c *Card) LoadConfig(card int16, path string) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdLoadConfig, card, 0, path); rc != 0 {
		return rc
	}
	if _, err := os.Stat(path); err != nil {
		return 1
	}
	return 0
}

func (c *Card) ClearStatus(card, axis, count int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdClrSts, card, axis, count); rc != 0 {
		return rc
	}
	for a := axis; a < axis+count; a++ {
		if validAxis(a) {
			c.axis(card, a).faults = 0
		}
	}
	return 0
}

func (c *Card) GetTrapPrm(card, axis int16) (model.TrapPrm, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetTrapPrm, card, axis); rc != 0 {
		return model.TrapPrm{}, rc
	}
	if !validAxis(axis) {
		return model.TrapPrm{}, 7
	}
	return c.axis(card, axis).trap, 0
}

func (c *Card) SetTrapPrm(card, axis int16, prm model.TrapPrm) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdSetTrapPrm, card, axis, prm); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).trap = prm
	return 0
}

func (c *Card) PrfTrap(card, axis int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdPrfTrap, card, axis); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).prfTrap = true
	return 0
}

func (c *Card) SetVel(card, axis int16, vel float64) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdSetVel, card, axis, vel); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).vel = vel
	return 0
}

func (c *Card) SetPos(card, axis int16, pos int32) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdSetPos, card, axis, pos); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).target = pos
	return 0
}

func (c *Card) Update(card int16, mask int32) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdUpdate, card, 0, mask); rc != 0 {
		return rc
	}
	for a := int16(1); a <= AxisCount; a++ {
		if mask&(1<<(a-1)) == 0 {
			continue
		}
		st := c.axis(card, a)
		if !st.prfTrap {
			return 1
		}
		st.moving = float64(st.target) != st.encPos
	}
	return 0
}

func (c *Card) GetHomePrm(card, axis int16) (model.HomePrm, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetHomePrm, card, axis); rc != 0 {
		return model.HomePrm{}, rc
	}
	if !validAxis(axis) {
		return model.HomePrm{}, 7
	}
	return c.axis(card, axis).home, 0
}

func (c *Card) GoHome(card, axis int16, prm model.HomePrm) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGoHome, card, axis, prm); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	st := c.axis(card, axis)
	st.home = prm
	st.homing = HomePolls
	return 0
}

func (c *Card) GetHomeStatus(card, axis int16) (model.HomeStatus, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetHomeStatus, card, axis); rc != 0 {
		return model.HomeStatus{}, rc
	}
	st := c.axis(card, axis)
	if st.homing > 0 {
		st.homing--
		st.encPos -= st.encPos / float64(st.homing+1)
	}
	if st.homing > 0 {
		return model.HomeStatus{Run: 1, Stage: 1}, 0
	}
	return model.HomeStatus{}, 0
}

func (c *Card) ZeroPos(card, axis, count int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdZeroPos, card, axis, count); rc != 0 {
		return rc
	}
	for a := axis; a < axis+count; a++ {
		if validAxis(a) {
			st := c.axis(card, a)
			st.encPos = 0
			st.target = 0
		}
	}
	return 0
}

func (c *Card) GetAxisEncPos(card, axis int16) (float64, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetAxisEncPos, card, axis); rc != 0 {
		return 0, rc
	}
	if !validAxis(axis) {
		return 0, 7
	}
	return c.axis(card, axis).encPos, 0
}

// GetSts возвращает слово состояния и продвигает движущуюся ось на один шаг.
func (c *Card) GetSts(card, axis int16) (int32, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetSts, card, axis); rc != 0 {
		return 0, rc
	}
	if !validAxis(axis) {
		return 0, 7
	}
	st := c.axis(card, axis)
	if len(st.script) > 0 {
		word := st.script[0]
		if len(st.script) > 1 {
			st.script = st.script[1:]
		}
		return word, 0
	}

	word := st.faults
	if st.servoOn {
		word |= statusServoEnabled
	}
	if st.moving {
		word |= statusMoving
		c.step(st)
	}
	return word, 0
}

func (c *Card) step(st *axisState) {
	step := math.Abs(st.vel) * c.stepSize
	if step < 1 {
		step = 1
	}
	target := float64(st.target)
	diff := target - st.encPos
	if math.Abs(diff) <= step {
		st.encPos = target
		st.moving = false
		return
	}
	st.encPos += math.Copysign(step, diff)
}

func (c *Card) AxisOn(card, axis int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdAxisOn, card, axis); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).servoOn = true
	return 0
}

func (c *Card) AxisOff(card, axis int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdAxisOff, card, axis); rc != 0 {
		return rc
	}
	if !validAxis(axis) {
		return 7
	}
	c.axis(card, axis).servoOn = false
	return 0
}

func (c *Card) SetDoBit(card, doType, index, value int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdSetDoBit, card, 0, doType, index, value); rc != 0 {
		return rc
	}
	if doType != model.MC_GPO || index < 1 || index > 16 {
		return 7
	}
	bit := int32(1) << (index - 1)
	if value != 0 {
		c.do[card] |= bit
	} else {
		c.do[card] &^= bit
	}
	return 0
}

func (c *Card) GetDo(card, doType int16) (int32, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetDo, card, 0, doType); rc != 0 {
		return 0, rc
	}
	if doType != model.MC_GPO {
		return 0, 7
	}
	return c.do[card], 0
}

func (c *Card) GetDi(card, diType int16) (int32, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetDi, card, 0, diType); rc != 0 {
		return 0, rc
	}
	if diType != model.MC_GPI {
		return 0, 7
	}
	return c.di[card], 0
}

func (c *Card) GetAdc(card, channel int16) (float64, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetAdc, card, 0, channel); rc != 0 {
		return 0, rc
	}
	adc := c.adcFor(card)
	if channel < 0 || int(channel) >= len(adc) {
		return 0, 7
	}
	return adc[channel], 0
}

func (c *Card) GetDac(card, channel int16) (int16, model.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdGetDac, card, 0, channel); rc != 0 {
		return 0, rc
	}
	dac := c.dacFor(card)
	if channel < 0 || int(channel) >= len(dac) {
		return 0, 7
	}
	return dac[channel], 0
}

func (c *Card) SetDac(card, channel int16, value int16) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdSetDac, card, 0, channel, value); rc != 0 {
		return rc
	}
	dac := c.dacFor(card)
	if channel < 0 || int(channel) >= len(dac) {
		return 7
	}
	dac[channel] = value
	return 0
}

// Stop останавливает оси по маске: движение прекращается на текущей позиции.
func (c *Card) Stop(card int16, mask, option int32) model.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rc := c.record(model.CmdStop, card, 0, mask, option); rc != 0 {
		return rc
	}
	for a := int16(1); a <= AxisCount; a++ {
		if mask&(1<<(a-1)) == 0 {
			continue
		}
		st := c.axis(card, a)
		st.moving = false
		st.homing = 0
		st.target = int32(st.encPos)
	}
	return 0
}

// String выводит краткое состояние оси, удобно в логах тестов.
func (c *Card) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fmt.Sprintf("sim card: %d opened, %d calls", len(c.opened), len(c.calls))
}
