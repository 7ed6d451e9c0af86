package model

// Result - код возврата любой функции библиотеки контроллера.
type Result int16

// Типы дискретных входов и выходов (аргумент diType/doType).
const (
	MC_LIMIT_POSITIVE int16 = 0
	MC_LIMIT_NEGATIVE int16 = 1
	MC_ALARM          int16 = 2
	MC_HOME           int16 = 3
	MC_GPI            int16 = 4
	MC_ARRIVE         int16 = 5

	MC_ENABLE int16 = 10
	MC_CLEAR  int16 = 11
	MC_GPO    int16 = 12
)

// Имена команд в том виде, в котором они попадают в сообщения об ошибках.
const (
	CmdOpen          = "GT_Open"
	CmdClose         = "GT_Close"
	CmdReset         = "GT_Reset"
	CmdLoadConfig    = "GT_LoadConfig"
	CmdClrSts        = "GT_ClrSts"
	CmdGetTrapPrm    = "GT_GetTrapPrm"
	CmdSetTrapPrm    = "GT_SetTrapPrm"
	CmdGetHomePrm    = "GT_GetHomePrm"
	CmdGoHome        = "GT_GoHome"
	CmdGetHomeStatus = "GT_GetHomeStatus"
	CmdZeroPos       = "GT_ZeroPos"
	CmdPrfTrap       = "GT_PrfTrap"
	CmdSetVel        = "GT_SetVel"
	CmdGetAxisEncPos = "GT_GetAxisEncPos"
	CmdSetPos        = "GT_SetPos"
	CmdUpdate        = "GT_Update"
	CmdGetSts        = "GT_GetSts"
	CmdAxisOn        = "GT_AxisOn"
	CmdAxisOff       = "GT_AxisOff"
	CmdSetDoBit      = "GT_SetDoBit"
	CmdGetDo         = "GT_GetDo"
	CmdGetDi         = "GT_GetDi"
	CmdGetAdc        = "GT_GetAdc"
	CmdGetDac        = "GT_GetDac"
	CmdSetDac        = "GT_SetDac"
	CmdStop          = "GT_Stop"
)

// TrapPrm - параметры трапециевидного профиля.
type TrapPrm struct {
	Acc        float64
	Dec        float64
	VelStart   float64
	SmoothTime int16
}

// HomePrm - запись параметров поиска нуля, передаваемая в GT_GoHome.
type HomePrm struct {
	Mode                int16
	MoveDir             int16
	IndexDir            int16
	Edge                int16
	TriggerIndex        int16
	VelHigh             float64
	VelLow              float64
	Acc                 float64
	Dec                 float64
	SmoothTime          int16
	HomeOffset          int32
	SearchHomeDistance  int32
	SearchIndexDistance int32
	EscapeStep          int32
	Pad2_1              int16
}

// HomeStatus - состояние процедуры поиска нуля.
type HomeStatus struct {
	Run   int16
	Stage int16
	Error int16
}

// Running сообщает, выполняется ли еще поиск нуля.
func (s HomeStatus) Running() bool {
	return s.Run != 0
}

// CommandPort определяет синхронный интерфейс команд платы контроллера.
// Каждый вызов атомарен и может выполняться из нескольких горутин одновременно.
type CommandPort interface {
	Open(card, channel, param int16) Result
	Close(card int16) Result
	Reset(card int16) Result
	LoadConfig(card int16, path string) Result
	ClearStatus(card, axis, count int16) Result

	GetTrapPrm(card, axis int16) (TrapPrm, Result)
	SetTrapPrm(card, axis int16, prm TrapPrm) Result
	PrfTrap(card, axis int16) Result
	SetVel(card, axis int16, vel float64) Result
	SetPos(card, axis int16, pos int32) Result
	Update(card int16, mask int32) Result

	GetHomePrm(card, axis int16) (HomePrm, Result)
	GoHome(card, axis int16, prm HomePrm) Result
	GetHomeStatus(card, axis int16) (HomeStatus, Result)
	ZeroPos(card, axis, count int16) Result

	GetAxisEncPos(card, axis int16) (float64, Result)
	GetSts(card, axis int16) (int32, Result)

	AxisOn(card, axis int16) Result
	AxisOff(card, axis int16) Result

	SetDoBit(card, doType, index, value int16) Result
	GetDo(card, doType int16) (int32, Result)
	GetDi(card, diType int16) (int32, Result)

	GetAdc(card, channel int16) (float64, Result)
	GetDac(card, channel int16) (int16, Result)
	SetDac(card, channel int16, value int16) Result

	Stop(card int16, mask, option int32) Result
}
