package gts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwtcode/googolAdapter/gts/axiscfg"
	"github.com/iwtcode/googolAdapter/gts/model"
)

// ErrUnsupported возвращается операциями, у которых нет аналога в контроллере.
var ErrUnsupported = errors.New("operation is not supported by GTS controller")

// CommandFault - ненулевой код возврата команды контроллера.
type CommandFault struct {
	Code    model.Result
	Kind    ResultKind
	Command string
	CardID  int16
}

func (e *CommandFault) Error() string {
	return fmt.Sprintf("cardNum : %d; %s: %s (rc=%d)", e.CardID, e.Command, e.Kind, int16(e.Code))
}

// Is позволяет сравнивать ошибку с шаблоном по виду: errors.Is(err, &CommandFault{Kind: ResultBusy}).
func (e *CommandFault) Is(target error) bool {
	t, ok := target.(*CommandFault)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Ошибки конфигурации осей определены в axiscfg, здесь - псевдонимы.
type (
	ConfigMissingError = axiscfg.ConfigMissingError
	ConfigInvalidError = axiscfg.ConfigInvalidError
)

// AxisFault - неисправность оси, обнаруженная по слову состояния.
// Kind - первая неисправность в порядке приоритета, All - все обнаруженные.
type AxisFault struct {
	Kind   FaultKind
	All    []FaultKind
	Status int32
	CardID int16
	Axis   int
}

func (e *AxisFault) Error() string {
	msg := fmt.Sprintf("card %d axis %d: %s (status=0x%X)", e.CardID, e.Axis, e.Kind, e.Status)
	if len(e.All) > 1 {
		names := make([]string, 0, len(e.All))
		for _, k := range e.All {
			names = append(names, k.String())
		}
		msg += ", all: " + strings.Join(names, ", ")
	}
	return msg
}

// Is сравнивает по виду неисправности: errors.Is(err, &AxisFault{Kind: FaultPositiveLimit}).
func (e *AxisFault) Is(target error) bool {
	t, ok := target.(*AxisFault)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// PortRangeError - номер оси или канала вне возможностей платы.
type PortRangeError struct {
	What  string
	Index int
	Max   int
}

func (e *PortRangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range [%d..%d]", e.What, e.Index, portBase(e.What), e.Max)
}

func portBase(what string) int {
	if what == "axis" {
		return 1
	}
	return 0
}

// ValueRangeError - значение не помещается в целочисленный аргумент команды
// (в том числе NaN и бесконечность).
type ValueRangeError struct {
	What  string
	Value float64
	Min   float64
	Max   float64
}

func (e *ValueRangeError) Error() string {
	return fmt.Sprintf("%s %g is out of range [%.0f..%.0f]", e.What, e.Value, e.Min, e.Max)
}
