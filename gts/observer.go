package gts

import (
	"sync"

	"github.com/iwtcode/googolAdapter/models"
)

// Observer получает снимки состояния осей. Publish не должен блокировать.
type Observer interface {
	Publish(snapshot models.AxisStatusSnapshot)
}

// PhaseObserver - необязательное расширение Observer для этапов движения.
type PhaseObserver interface {
	PublishPhase(card int16, axis int, phase models.MotionPhase)
}

// ObserverFunc позволяет использовать функцию как Observer.
type ObserverFunc func(models.AxisStatusSnapshot)

func (f ObserverFunc) Publish(s models.AxisStatusSnapshot) { f(s) }

type nopObserver struct{}

func (nopObserver) Publish(models.AxisStatusSnapshot) {}

// Broadcaster раздает снимки подписчикам через буферизованные каналы.
// Если буфер подписчика заполнен, снимок для него теряется.
type Broadcaster struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan models.AxisStatusSnapshot
	phases map[int]chan PhaseEvent
}

// PhaseEvent - смена этапа движения оси.
type PhaseEvent struct {
	CardID int16              `json:"card_id"`
	Axis   int                `json:"axis"`
	Phase  models.MotionPhase `json:"phase"`
}

// NewBroadcaster создает пустой Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:   make(map[int]chan models.AxisStatusSnapshot),
		phases: make(map[int]chan PhaseEvent),
	}
}

// Subscribe регистрирует подписчика на снимки. cancel закрывает канал.
func (b *Broadcaster) Subscribe(buffer int) (<-chan models.AxisStatusSnapshot, func()) {
	ch := make(chan models.AxisStatusSnapshot, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

// SubscribePhases регистрирует подписчика на смену этапов движения.
func (b *Broadcaster) SubscribePhases(buffer int) (<-chan PhaseEvent, func()) {
	ch := make(chan PhaseEvent, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.phases[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.phases, id)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *Broadcaster) Publish(s models.AxisStatusSnapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

func (b *Broadcaster) PublishPhase(card int16, axis int, phase models.MotionPhase) {
	ev := PhaseEvent{CardID: card, Axis: axis, Phase: phase}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.phases {
		select {
		case ch <- ev:
		default:
		}
	}
}
