package gts_test

import (
	"sync"
	"testing"
	"time"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/gts/axiscfg"
	"github.com/iwtcode/googolAdapter/gts/sim"
	"github.com/iwtcode/googolAdapter/models"
	"github.com/stretchr/testify/require"
)

// sleepRecorder запоминает запрошенные паузы вместо реального ожидания.
type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (r *sleepRecorder) sleep(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, d)
}

func (r *sleepRecorder) durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.calls...)
}

// recorder собирает снимки и этапы движения.
type recorder struct {
	mu        sync.Mutex
	snapshots []models.AxisStatusSnapshot
	phases    []models.MotionPhase
}

func (r *recorder) Publish(s models.AxisStatusSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, s)
}

func (r *recorder) PublishPhase(_ int16, _ int, p models.MotionPhase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, p)
}

func (r *recorder) last(t *testing.T) models.AxisStatusSnapshot {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.snapshots, "Ни одного снимка не опубликовано")
	return r.snapshots[len(r.snapshots)-1]
}

type fixture struct {
	card   *sim.Card
	ctrl   *gts.Controller
	sleeps *sleepRecorder
	events *recorder
}

func validAxis(index int) axiscfg.AxisCfg {
	return axiscfg.AxisCfg{
		AxisIndex:          index,
		HomeMode:           1,
		HomeDir:            1,
		SearchHomeDistance: 20000,
		HomeOffset:         0,
		EscapeStep:         1000,
		Pad2_1:             0,
	}
}

func storeOf(card int, axes ...axiscfg.AxisCfg) *axiscfg.Store {
	return axiscfg.New(axiscfg.File{CardAxisCfgs: []axiscfg.CardAxisCfg{{CardID: card, AxisCfgs: axes}}})
}

func newFixture(t *testing.T, opts ...gts.Option) *fixture {
	t.Helper()
	return newCardFixture(t, 0, opts...)
}

func newCardFixture(t *testing.T, card int16, opts ...gts.Option) *fixture {
	t.Helper()
	f := &fixture{
		card:   sim.New(),
		sleeps: &sleepRecorder{},
		events: &recorder{},
	}
	all := append([]gts.Option{
		gts.WithSleep(f.sleeps.sleep),
		gts.WithObserver(f.events),
	}, opts...)
	f.ctrl = gts.NewController(card, f.card, all...)
	return f
}

func (f *fixture) servoOn(t *testing.T, axis int) {
	t.Helper()
	require.NoError(t, f.ctrl.ServoOn(axis))
	f.card.ResetCalls()
}

func (f *fixture) count(command string) int {
	n := 0
	for _, c := range f.card.Commands() {
		if c == command {
			n++
		}
	}
	return n
}

func (f *fixture) firstCall(t *testing.T, command string) sim.Call {
	t.Helper()
	for _, c := range f.card.Calls() {
		if c.Command == command {
			return c
		}
	}
	t.Fatalf("команда %s не вызывалась", command)
	return sim.Call{}
}
