package gts_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/gts/axiscfg"
	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)

	require.NoError(t, f.ctrl.Move(1, 1, 500))
	assert.Equal(t, 500.0, f.events.last(t).Position)

	require.NoError(t, f.ctrl.Move(1, 1, -500))
	assert.Equal(t, 0.0, f.events.last(t).Position)

	for _, s := range f.events.snapshots {
		assert.Equal(t, int16(0), s.CardID)
		assert.Equal(t, 1, s.Axis)
		assert.Nil(t, s.IsHomed, "Снимки перемещения несут только позицию")
	}
}

func TestMoveExitsPollingWhenMovingBitClears(t *testing.T) {
	f := newFixture(t)
	f.card.ScriptStatus(0, 1, gts.StatusServoEnabled|gts.StatusMoving, gts.StatusServoEnabled)

	require.NoError(t, f.ctrl.Move(1, 10, 100))

	// Два опроса в цикле и одно итоговое чтение после выдержки.
	assert.Equal(t, 3, f.count(model.CmdGetSts))
	assert.Equal(t, []time.Duration{
		gts.MovePollInterval,
		gts.MovePollInterval,
		gts.MoveSettleDelay,
	}, f.sleeps.durations())
	assert.Equal(t, []models.MotionPhase{
		models.PhaseIssuing,
		models.PhasePolling,
		models.PhaseSettling,
		models.PhaseVerified,
	}, f.events.phases)
}

func TestMoveIssuesCommandsInOrder(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 3)

	require.NoError(t, f.ctrl.Move(3, 5, 200))

	cmds := f.card.Commands()
	require.GreaterOrEqual(t, len(cmds), 5)
	assert.Equal(t, []string{
		model.CmdPrfTrap,
		model.CmdSetVel,
		model.CmdGetAxisEncPos,
		model.CmdSetPos,
		model.CmdUpdate,
	}, cmds[:5])
	assert.Equal(t, []interface{}{int32(1 << 2)}, f.firstCall(t, model.CmdUpdate).Args)
}

func TestMoveTruncatesEncoderAndDistanceSeparately(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)
	f.card.SetEncoderPosition(0, 1, 10.7)

	require.NoError(t, f.ctrl.Move(1, 1, 5.9))
	assert.Equal(t, []interface{}{int32(15)}, f.firstCall(t, model.CmdSetPos).Args)
}

func TestMoveTerminalPositiveLimit(t *testing.T) {
	f := newFixture(t)
	f.card.ScriptStatus(0, 1, gts.StatusPositiveLimit)

	err := f.ctrl.Move(1, 10, 100)
	require.Error(t, err)

	var fault *gts.AxisFault
	require.True(t, errors.As(err, &fault), "Ожидалась неисправность оси, получено: %v", err)
	assert.Equal(t, gts.FaultPositiveLimit, fault.Kind)
	assert.Contains(t, fault.All, gts.FaultServoNotEnabled)
	assert.True(t, errors.Is(err, &gts.AxisFault{Kind: gts.FaultPositiveLimit}))
	assert.Equal(t, models.PhaseFaulted, f.events.phases[len(f.events.phases)-1])
}

func TestMoveTerminalFaultPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		status int32
		want   gts.FaultKind
	}{
		{"servo alarm wins", gts.StatusServoEnabled | gts.StatusServoAlarm | gts.StatusPositiveLimit, gts.FaultServoAlarm},
		{"following error", gts.StatusServoEnabled | gts.StatusFollowingError, gts.FaultFollowingError},
		{"negative limit", gts.StatusServoEnabled | gts.StatusNegativeLimit, gts.FaultNegativeLimit},
		{"emergency stop", gts.StatusServoEnabled | gts.StatusEmergencyStop, gts.FaultEmergencyStop},
		{"servo disabled", 0, gts.FaultServoNotEnabled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.card.ScriptStatus(0, 2, tc.status)

			err := f.ctrl.Move(2, 1, 10)
			var fault *gts.AxisFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, tc.want, fault.Kind)
			assert.Equal(t, 2, fault.Axis)
		})
	}
}

func TestMoveStillMovingAfterSettle(t *testing.T) {
	f := newFixture(t)
	f.card.ScriptStatus(0, 1, gts.StatusServoEnabled, gts.StatusServoEnabled|gts.StatusMoving)

	err := f.ctrl.Move(1, 1, 10)
	assert.True(t, errors.Is(err, &gts.AxisFault{Kind: gts.FaultStillMoving}), "получено: %v", err)
}

func TestMoveSmoothStopIsNotAFault(t *testing.T) {
	f := newFixture(t)
	f.card.ScriptStatus(0, 1, gts.StatusServoEnabled|gts.StatusSmoothStop)

	assert.NoError(t, f.ctrl.Move(1, 1, 10))
}

func TestMoveAbsUsesTargetAndLongSettle(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)
	f.card.SetEncoderPosition(0, 1, 123)

	require.NoError(t, f.ctrl.MoveAbs(1, 2, 300.8))

	assert.Equal(t, []interface{}{int32(300)}, f.firstCall(t, model.CmdSetPos).Args)
	assert.Equal(t, []string{
		model.CmdPrfTrap,
		model.CmdSetVel,
		model.CmdSetPos,
		model.CmdUpdate,
	}, f.card.Commands()[:4], "Абсолютное перемещение не читает энкодер перед SetPos")

	sleeps := f.sleeps.durations()
	require.NotEmpty(t, sleeps)
	assert.Equal(t, gts.MoveAbsSettleDelay, sleeps[len(sleeps)-1])
	for _, d := range sleeps[:len(sleeps)-1] {
		assert.Equal(t, gts.MovePollInterval, d)
	}
	assert.Equal(t, 300.0, f.events.last(t).Position)
}

func TestMoveRejectsTargetOutsideInt32(t *testing.T) {
	cases := []struct {
		name     string
		absolute bool
		target   float64
	}{
		{"absolute 1e10", true, 1e10},
		{"absolute 3e9", true, 3e9},
		{"absolute below int32", true, -3e9},
		{"absolute NaN", true, math.NaN()},
		{"absolute +Inf", true, math.Inf(1)},
		{"relative 3e9", false, 3e9},
		{"relative NaN", false, math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.servoOn(t, 1)

			var err error
			if tc.absolute {
				err = f.ctrl.MoveAbs(1, 1, tc.target)
			} else {
				err = f.ctrl.Move(1, 1, tc.target)
			}
			var valueErr *gts.ValueRangeError
			require.True(t, errors.As(err, &valueErr), "получено: %v", err)
			assert.Empty(t, f.card.Commands(), "Команды не должны отправляться")
			assert.Equal(t, []models.MotionPhase{models.PhaseFaulted}, f.events.phases)
		})
	}
}

func TestMoveRejectsOverflowingRelativeTarget(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)
	f.card.SetEncoderPosition(0, 1, math.MaxInt32-100)

	err := f.ctrl.Move(1, 1, 1000)
	var valueErr *gts.ValueRangeError
	require.True(t, errors.As(err, &valueErr), "получено: %v", err)
	assert.Equal(t, "target position", valueErr.What)
	assert.Zero(t, f.count(model.CmdSetPos))
	assert.Zero(t, f.count(model.CmdUpdate))
}

func TestMoveAbsAcceptsInt32Bounds(t *testing.T) {
	for _, target := range []float64{math.MaxInt32, math.MinInt32 - 0.9} {
		f := newFixture(t)
		f.card.ScriptStatus(0, 1, gts.StatusServoEnabled)

		require.NoError(t, f.ctrl.MoveAbs(1, 1, target))
		assert.Equal(t, []interface{}{int32(math.Trunc(target))}, f.firstCall(t, model.CmdSetPos).Args)
	}
}

func TestMoveReportsConfiguredCardID(t *testing.T) {
	f := newCardFixture(t, 1)
	f.servoOn(t, 2)

	require.NoError(t, f.ctrl.Move(2, 1, 300))
	require.NotEmpty(t, f.events.snapshots)
	for _, s := range f.events.snapshots {
		assert.Equal(t, int16(1), s.CardID)
	}
	for _, c := range f.card.Calls() {
		assert.Equal(t, int16(1), c.Card, c.Command)
	}

	f.card.InjectFault(1, 2, gts.StatusPositiveLimit)
	err := f.ctrl.Move(2, 1, 10)
	var fault *gts.AxisFault
	require.True(t, errors.As(err, &fault), "получено: %v", err)
	assert.Equal(t, int16(1), fault.CardID)
	assert.Equal(t, 2, fault.Axis)

	f.card.SetResult(model.CmdSetVel, -1)
	err = f.ctrl.Move(2, 1, 10)
	var cmdFault *gts.CommandFault
	require.True(t, errors.As(err, &cmdFault), "получено: %v", err)
	assert.Equal(t, int16(1), cmdFault.CardID)
	assert.Equal(t, model.CmdSetVel, cmdFault.Command)
}

func TestExecuteDispatchesByRequestKind(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)

	require.NoError(t, f.ctrl.Execute(models.MotionRequest{Axis: 1, Speed: 1, Target: 250, Absolute: true}))
	require.NoError(t, f.ctrl.Execute(models.MotionRequest{Axis: 1, Speed: 1, Target: 50, FastMove: true}))
	assert.Equal(t, 300.0, f.events.last(t).Position)
}

func TestMoveCommandFaultAbortsSequence(t *testing.T) {
	f := newFixture(t)
	f.card.SetResult(model.CmdSetVel, -8)

	err := f.ctrl.Move(1, 1, 10)
	var fault *gts.CommandFault
	require.True(t, errors.As(err, &fault))
	assert.Equal(t, gts.ResultBusy, fault.Kind)
	assert.Equal(t, model.CmdSetVel, fault.Command)
	assert.Equal(t, int16(0), fault.CardID)
	assert.Zero(t, f.count(model.CmdSetPos))
	assert.Zero(t, f.count(model.CmdUpdate))
}

func TestMovePollFaultAbortsSequence(t *testing.T) {
	f := newFixture(t)
	f.card.SetResult(model.CmdGetSts, -1)

	err := f.ctrl.Move(1, 1, 10)
	assert.True(t, errors.Is(err, &gts.CommandFault{Kind: gts.ResultCommFailure}))
	assert.Empty(t, f.sleeps.durations())
}

func TestMoveRejectsAxisOutOfRange(t *testing.T) {
	f := newFixture(t)

	for _, axis := range []int{0, 9, -1} {
		var rangeErr *gts.PortRangeError
		require.True(t, errors.As(f.ctrl.Move(axis, 1, 1), &rangeErr))
	}
	assert.Empty(t, f.card.Commands())
}

func TestHomePublishesHomedSnapshotWithoutStatusCheck(t *testing.T) {
	f := newFixture(t, gts.WithAxisStore(storeOf(0, validAxis(1))))
	f.card.SetEncoderPosition(0, 1, 300)
	// Слово состояния с концевиком не должно влиять на результат поиска нуля.
	f.card.ScriptStatus(0, 1, gts.StatusPositiveLimit)

	require.NoError(t, f.ctrl.Home(1, 20, 1))

	last := f.events.last(t)
	assert.Equal(t, 0.0, last.Position)
	require.NotNil(t, last.IsHomed)
	require.NotNil(t, last.IsServoOn)
	assert.True(t, *last.IsHomed)
	assert.True(t, *last.IsServoOn)
	assert.Zero(t, f.count(model.CmdGetSts))

	assert.Equal(t, []time.Duration{
		gts.HomePollInterval,
		gts.HomePollInterval,
		gts.HomePollInterval,
		gts.HomeSettleDelay,
	}, f.sleeps.durations())
	// Позиция публикуется на каждом опросе, пока поиск продолжается.
	assert.Len(t, f.events.snapshots, 3)
}

func TestHomeWritesConfiguredParameters(t *testing.T) {
	cfg := validAxis(2)
	cfg.HomeMode = 4
	cfg.HomeDir = -1
	cfg.HomeOffset = 150
	cfg.Pad2_1 = 1
	f := newFixture(t, gts.WithAxisStore(storeOf(0, cfg)))

	require.NoError(t, f.ctrl.Home(2, 35, 9))

	prm := f.card.HomeParams(0, 2)
	assert.Equal(t, int16(4), prm.Mode)
	assert.Equal(t, int16(-1), prm.MoveDir)
	assert.Equal(t, int32(20000), prm.SearchHomeDistance)
	assert.Equal(t, int32(150), prm.HomeOffset)
	assert.Equal(t, int32(1000), prm.EscapeStep)
	assert.Equal(t, int16(1), prm.Pad2_1)
	assert.Equal(t, 35.0, prm.VelHigh)
	assert.Equal(t, float64(gts.HomeCreepSpeed), prm.VelLow)
	assert.Equal(t, float64(gts.HomeAcceleration), prm.Acc)
	assert.Equal(t, float64(gts.HomeDeceleration), prm.Dec)

	assert.Equal(t, []string{model.CmdGetHomePrm, model.CmdGoHome}, f.card.Commands()[:2])
	tail := f.card.Commands()[len(f.card.Commands())-3:]
	assert.Equal(t, []string{model.CmdZeroPos, model.CmdClrSts, model.CmdGetAxisEncPos}, tail)
}

func TestHomeInvalidDirectionIssuesNoCommands(t *testing.T) {
	cfg := validAxis(1)
	cfg.HomeDir = 0
	f := newFixture(t, gts.WithAxisStore(storeOf(0, cfg)))

	err := f.ctrl.Home(1, 20, 1)
	var invalid *gts.ConfigInvalidError
	require.True(t, errors.As(err, &invalid), "получено: %v", err)
	assert.Equal(t, axiscfg.FieldHomeDirection, invalid.Field)
	assert.Equal(t, 1, invalid.Axis)
	assert.Empty(t, f.card.Commands())
	assert.Equal(t, []models.MotionPhase{models.PhaseFaulted}, f.events.phases)
}

func TestHomeMissingConfig(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.Home(5, 20, 1)
	var missing *gts.ConfigMissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 5, missing.Axis)
	assert.Empty(t, f.card.Commands())
}

func TestHomeCommandFaults(t *testing.T) {
	for _, cmd := range []string{model.CmdGetHomePrm, model.CmdGoHome, model.CmdGetHomeStatus, model.CmdZeroPos} {
		t.Run(cmd, func(t *testing.T) {
			f := newFixture(t, gts.WithAxisStore(storeOf(0, validAxis(1))))
			f.card.SetResult(cmd, -7)

			err := f.ctrl.Home(1, 20, 1)
			var fault *gts.CommandFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, cmd, fault.Command)
			assert.Equal(t, gts.ResultUnresponsive, fault.Kind)
		})
	}
}

func TestUpdateStatusReportsHomedAfterHome(t *testing.T) {
	f := newFixture(t, gts.WithAxisStore(storeOf(0, validAxis(1))))

	require.NoError(t, f.ctrl.UpdateStatus(1))
	s := f.events.last(t)
	assert.False(t, *s.IsHomed)
	assert.False(t, *s.IsServoOn)

	require.NoError(t, f.ctrl.ServoOn(1))
	require.NoError(t, f.ctrl.Home(1, 10, 1))
	require.NoError(t, f.ctrl.UpdateStatus(1))
	s = f.events.last(t)
	assert.True(t, *s.IsHomed)
	assert.True(t, *s.IsServoOn)
}

func TestUpdateStatusAll(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.UpdateStatusAll())
	assert.Len(t, f.events.snapshots, gts.AxisCount)

	f.card.SetResult(model.CmdGetSts, 1)
	assert.Error(t, f.ctrl.UpdateStatusAll())
}

func TestServoAndResetPropagateResultCodes(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.ServoOn(4))
	assert.True(t, f.card.ServoOn(0, 4))
	require.NoError(t, f.ctrl.ServoOff(4))
	assert.False(t, f.card.ServoOn(0, 4))

	f.card.InjectFault(0, 4, gts.StatusServoAlarm)
	require.NoError(t, f.ctrl.ResetFault(4))
	assert.Equal(t, []interface{}{int16(1)}, f.firstCall(t, model.CmdClrSts).Args)

	f.card.SetResult(model.CmdAxisOn, 2)
	assert.True(t, errors.Is(f.ctrl.ServoOn(4), &gts.CommandFault{Kind: gts.ResultLicense}))
	f.card.SetResult(model.CmdClrSts, 1)
	assert.True(t, errors.Is(f.ctrl.ResetFault(4), &gts.CommandFault{Kind: gts.ResultExecError}))
}

func TestStopSwallowsResultCode(t *testing.T) {
	f := newFixture(t)
	f.card.SetResult(model.CmdStop, -3)

	f.ctrl.Stop()

	call := f.firstCall(t, model.CmdStop)
	assert.Equal(t, []interface{}{int32(0xff), int32(0)}, call.Args)
}

func TestStopHaltsMovingAxis(t *testing.T) {
	f := newFixture(t)
	f.servoOn(t, 1)
	f.card.SetStepSize(1)

	polls := 0
	ctrl := gts.NewController(0, f.card, gts.WithSleep(func(time.Duration) {
		polls++
		if polls == 3 {
			f.ctrl.Stop()
		}
	}))
	require.NoError(t, ctrl.Move(1, 1, 1_000_000))

	pos, rc := f.card.GetAxisEncPos(0, 1)
	require.Zero(t, rc)
	assert.Equal(t, 3.0, pos)
	assert.Equal(t, 1, f.count(model.CmdStop))
}
