package sim_test

import (
	"testing"

	"github.com/iwtcode/googolAdapter/gts/model"
	"github.com/iwtcode/googolAdapter/gts/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallLogIsBounded(t *testing.T) {
	card := sim.New()

	total := sim.DefaultCallLogSize*3 + 7
	for i := 0; i < total; i++ {
		_, rc := card.GetSts(0, 1)
		require.Equal(t, model.Result(0), rc)
	}
	card.Stop(0, 0x01, 0)

	calls := card.Calls()
	assert.LessOrEqual(t, len(calls), sim.DefaultCallLogSize)
	assert.Greater(t, len(calls), sim.DefaultCallLogSize/2, "Журнал хранит последние вызовы")
	assert.Equal(t, model.CmdStop, calls[len(calls)-1].Command)
}

func TestCallLogCanBeDisabled(t *testing.T) {
	card := sim.New()
	card.GetSts(0, 1)
	card.SetCallLogSize(0)
	assert.Empty(t, card.Calls(), "Отключение очищает журнал")

	card.SetResult(model.CmdGetSts, 7)
	for i := 0; i < 1000; i++ {
		_, rc := card.GetSts(0, 1)
		assert.Equal(t, model.Result(7), rc, "Подмена кода работает без журнала")
	}
	assert.Empty(t, card.Calls())
	assert.Empty(t, card.Commands())
}

func TestCallLogSizeKeepsNewest(t *testing.T) {
	card := sim.New()
	card.SetCallLogSize(4)
	for axis := int16(1); axis <= 8; axis++ {
		card.GetSts(0, axis)
	}

	calls := card.Calls()
	require.NotEmpty(t, calls)
	assert.LessOrEqual(t, len(calls), 4)
	assert.Equal(t, int16(8), calls[len(calls)-1].Axis)
	for i := 1; i < len(calls); i++ {
		assert.Equal(t, calls[i-1].Axis+1, calls[i].Axis, "Порядок записей сохраняется")
	}
}
