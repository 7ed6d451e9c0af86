package gts

import "github.com/iwtcode/googolAdapter/gts/model"

// ResultKind - смысловая категория кода возврата.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultExecError
	ResultLicense
	ResultInvalidParam
	ResultFirmware
	ResultCommFailure
	ResultOpenFailed
	ResultUnresponsive
	ResultBusy
	ResultUnknown
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultExecError:
		return "command execution error"
	case ResultLicense:
		return "command not supported by license"
	case ResultInvalidParam:
		return "invalid command parameter"
	case ResultFirmware:
		return "command not supported by DSP firmware"
	case ResultCommFailure:
		return "communication with card failed"
	case ResultOpenFailed:
		return "failed to open controller"
	case ResultUnresponsive:
		return "controller is not responding"
	case ResultBusy:
		return "command resource busy"
	default:
		return "unknown error"
	}
}

// ClassifyResult переводит код возврата в категорию. Функция тотальна:
// любой код вне таблицы дает ResultUnknown.
func ClassifyResult(rc model.Result) ResultKind {
	switch rc {
	case 0:
		return ResultOK
	case 1:
		return ResultExecError
	case 2:
		return ResultLicense
	case 7:
		return ResultInvalidParam
	case 8:
		return ResultFirmware
	case -1, -2, -3, -4, -5:
		return ResultCommFailure
	case -6:
		return ResultOpenFailed
	case -7:
		return ResultUnresponsive
	case -8:
		return ResultBusy
	default:
		return ResultUnknown
	}
}

// CheckResult возвращает *CommandFault для любого ненулевого кода.
func CheckResult(rc model.Result, command string, card int16) error {
	kind := ClassifyResult(rc)
	if kind == ResultOK {
		return nil
	}
	return &CommandFault{Code: rc, Kind: kind, Command: command, CardID: card}
}
