package gts

import (
	"math"
	"time"

	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/sirupsen/logrus"
)

// Интервалы опроса и выдержки после движения.
const (
	HomePollInterval   = 50 * time.Millisecond
	HomeSettleDelay    = 500 * time.Millisecond
	MovePollInterval   = 100 * time.Millisecond
	MoveSettleDelay    = 10 * time.Millisecond
	MoveAbsSettleDelay = 500 * time.Millisecond
)

// Фиксированные параметры профиля поиска нуля.
const (
	HomeAcceleration = 5
	HomeDeceleration = 5
	HomeCreepSpeed   = 1
)

const stopAllMask = 0xff

// Home выполняет поиск нуля оси. Параметры оси проверяются до первой команды.
// creepSpeed принимается для совместимости, скорость дотяжки всегда HomeCreepSpeed.
func (c *Controller) Home(axis int, hiSpeed, creepSpeed float64) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	log := c.axisLogger(axis, "home")

	cfg, err := c.AxisStore().Lookup(c.card, axis)
	if err != nil {
		return c.fault(log, axis, err)
	}

	c.phase(log, axis, models.PhaseIssuing)
	ax := int16(axis)
	prm, rc := c.port.GetHomePrm(c.card, ax)
	if err := c.check(rc, model.CmdGetHomePrm); err != nil {
		return c.fault(log, axis, err)
	}
	prm.Mode = int16(cfg.HomeMode)
	prm.MoveDir = int16(cfg.HomeDirection)
	prm.SearchHomeDistance = int32(cfg.SearchHomeDistance)
	prm.HomeOffset = int32(cfg.HomeOffset)
	prm.EscapeStep = int32(cfg.EscapeStep)
	prm.Pad2_1 = int16(cfg.ReverseAtOrigin)
	prm.Acc = HomeAcceleration
	prm.Dec = HomeDeceleration
	prm.VelHigh = hiSpeed
	prm.VelLow = HomeCreepSpeed
	if creepSpeed != HomeCreepSpeed {
		log.WithField("creep_speed", creepSpeed).Debug("Requested creep speed ignored")
	}
	if err := c.check(c.port.GoHome(c.card, ax, prm), model.CmdGoHome); err != nil {
		return c.fault(log, axis, err)
	}

	c.phase(log, axis, models.PhasePolling)
	for {
		c.sleep(HomePollInterval)
		st, rc := c.port.GetHomeStatus(c.card, ax)
		if err := c.check(rc, model.CmdGetHomeStatus); err != nil {
			return c.fault(log, axis, err)
		}
		if !st.Running() {
			break
		}
		if _, err := c.publishPosition(axis); err != nil {
			return c.fault(log, axis, err)
		}
	}

	c.phase(log, axis, models.PhaseSettling)
	c.sleep(HomeSettleDelay)
	if err := c.check(c.port.ZeroPos(c.card, ax, 1), model.CmdZeroPos); err != nil {
		return c.fault(log, axis, err)
	}
	if err := c.check(c.port.ClearStatus(c.card, ax, 1), model.CmdClrSts); err != nil {
		return c.fault(log, axis, err)
	}
	pos, rc := c.port.GetAxisEncPos(c.card, ax)
	if err := c.check(rc, model.CmdGetAxisEncPos); err != nil {
		return c.fault(log, axis, err)
	}

	// NOTE: в отличие от Move/MoveAbs слово состояния после поиска нуля
	// не проверяется, а привод публикуется включенным без чтения бита 0x200.
	c.homed.Store(axis, true)
	c.observer.Publish(c.snapshot(axis, pos, models.Bool(true), models.Bool(true)))
	c.phase(log, axis, models.PhaseVerified)
	return nil
}

// Move - относительное перемещение на distance от текущей позиции энкодера.
func (c *Controller) Move(axis int, speed, distance float64) error {
	return c.move(axis, speed, distance, false)
}

// MoveAbs - перемещение в абсолютную позицию.
// Выдержка после движения длиннее, чем у Move (MoveAbsSettleDelay).
func (c *Controller) MoveAbs(axis int, speed, position float64) error {
	return c.move(axis, speed, position, true)
}

// Execute выполняет перемещение, описанное запросом.
func (c *Controller) Execute(req models.MotionRequest) error {
	if req.Absolute {
		return c.MoveAbs(req.Axis, req.Speed, req.Target)
	}
	return c.Move(req.Axis, req.Speed, req.Target)
}

func (c *Controller) move(axis int, speed, target float64, absolute bool) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	op, settle := "move", MoveSettleDelay
	if absolute {
		op, settle = "move_abs", MoveAbsSettleDelay
	}
	log := c.axisLogger(axis, op)
	ax := int16(axis)

	// Цель вне int32 отклоняется до первой команды.
	what := "distance"
	if absolute {
		what = "position"
	}
	pos, err := toInt32(what, target)
	if err != nil {
		return c.fault(log, axis, err)
	}

	c.phase(log, axis, models.PhaseIssuing)
	if err := c.check(c.port.PrfTrap(c.card, ax), model.CmdPrfTrap); err != nil {
		return c.fault(log, axis, err)
	}
	if err := c.check(c.port.SetVel(c.card, ax, speed), model.CmdSetVel); err != nil {
		return c.fault(log, axis, err)
	}

	if !absolute {
		enc, rc := c.port.GetAxisEncPos(c.card, ax)
		if err := c.check(rc, model.CmdGetAxisEncPos); err != nil {
			return c.fault(log, axis, err)
		}
		// Обе величины усекаются до целого по отдельности.
		pos, err = toInt32("target position", math.Trunc(enc)+math.Trunc(target))
		if err != nil {
			return c.fault(log, axis, err)
		}
	}
	if err := c.check(c.port.SetPos(c.card, ax, pos), model.CmdSetPos); err != nil {
		return c.fault(log, axis, err)
	}
	if err := c.check(c.port.Update(c.card, 1<<(axis-1)), model.CmdUpdate); err != nil {
		return c.fault(log, axis, err)
	}

	c.phase(log, axis, models.PhasePolling)
	for {
		status, rc := c.port.GetSts(c.card, ax)
		if err := c.check(rc, model.CmdGetSts); err != nil {
			return c.fault(log, axis, err)
		}
		if _, err := c.publishPosition(axis); err != nil {
			return c.fault(log, axis, err)
		}
		c.sleep(MovePollInterval)
		if !IsMoving(status) {
			break
		}
	}

	c.phase(log, axis, models.PhaseSettling)
	c.sleep(settle)
	if _, err := c.publishPosition(axis); err != nil {
		return c.fault(log, axis, err)
	}

	// Итоговое слово читается заново: оно должно отражать состояние после выдержки.
	status, rc := c.port.GetSts(c.card, ax)
	if err := c.check(rc, model.CmdGetSts); err != nil {
		return c.fault(log, axis, err)
	}
	if err := ValidateStatus(c.card, axis, status); err != nil {
		return c.fault(log, axis, err)
	}

	c.phase(log, axis, models.PhaseVerified)
	return nil
}

// ServoOn включает привод оси.
func (c *Controller) ServoOn(axis int) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	return c.check(c.port.AxisOn(c.card, int16(axis)), model.CmdAxisOn)
}

// ServoOff выключает привод оси.
func (c *Controller) ServoOff(axis int) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	return c.check(c.port.AxisOff(c.card, int16(axis)), model.CmdAxisOff)
}

// ResetFault сбрасывает флаги неисправностей оси.
func (c *Controller) ResetFault(axis int) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	return c.check(c.port.ClearStatus(c.card, int16(axis), 1), model.CmdClrSts)
}

// Stop останавливает все оси платы. Код возврата только логируется.
func (c *Controller) Stop() {
	if err := c.check(c.port.Stop(c.card, stopAllMask, 0), model.CmdStop); err != nil {
		c.logger.WithError(err).Warn("Stop failed")
		return
	}
	c.logger.Info("All axes stopped")
}

func (c *Controller) publishPosition(axis int) (float64, error) {
	pos, rc := c.port.GetAxisEncPos(c.card, int16(axis))
	if err := c.check(rc, model.CmdGetAxisEncPos); err != nil {
		return 0, err
	}
	c.observer.Publish(c.snapshot(axis, pos, nil, nil))
	return pos, nil
}

func (c *Controller) axisLogger(axis int, op string) logrus.FieldLogger {
	return c.logger.WithFields(logrus.Fields{"axis": axis, "op": op})
}

func (c *Controller) phase(log logrus.FieldLogger, axis int, p models.MotionPhase) {
	log.WithField("phase", p).Debug("Motion phase")
	if po, ok := c.observer.(PhaseObserver); ok {
		po.PublishPhase(c.card, axis, p)
	}
}

func (c *Controller) fault(log logrus.FieldLogger, axis int, err error) error {
	log.WithError(err).Error("Motion failed")
	c.phase(log, axis, models.PhaseFaulted)
	return err
}
