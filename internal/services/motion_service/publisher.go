package motion_service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/googolAdapter/gts"
	"github.com/iwtcode/googolAdapter/internal/domain/models"
	"github.com/iwtcode/googolAdapter/internal/interfaces"
	"github.com/iwtcode/googolAdapter/internal/middleware/logging"
	pubmodels "github.com/iwtcode/googolAdapter/models"
)

const (
	subscriptionBuffer = 256
	produceTimeout     = 2 * time.Second
)

// publisher пересылает снимки и этапы движения в Kafka и клиентам websocket.
// Kafka и websocket читают разные подписки, поэтому медленный брокер
// не задерживает поток для клиентов.
type publisher struct {
	ctrl     interfaces.Controller
	producer interfaces.KafkaService
	hub      *Hub
	logger   *logging.Logger
	cancels  []func()
	wg       sync.WaitGroup
}

func newPublisher(ctrl interfaces.Controller, producer interfaces.KafkaService, hub *Hub, logger *logging.Logger) *publisher {
	return &publisher{
		ctrl:     ctrl,
		producer: producer,
		hub:      hub,
		logger:   logger.WithPrefix("PUBLISHER"),
	}
}

func (p *publisher) start() {
	kafkaCh, cancelKafka := p.ctrl.Subscribe(subscriptionBuffer)
	streamCh, cancelStream := p.ctrl.Subscribe(subscriptionBuffer)
	phaseCh, cancelPhases := p.ctrl.SubscribePhases(subscriptionBuffer)
	p.cancels = []func(){cancelKafka, cancelStream, cancelPhases}

	p.wg.Add(2)
	go func() {
		defer p.wg.Done()
		for s := range kafkaCh {
			p.produce(s)
		}
	}()
	go func() {
		defer p.wg.Done()
		p.stream(streamCh, phaseCh)
	}()
}

func (p *publisher) stop() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.wg.Wait()
}

func (p *publisher) produce(s pubmodels.AxisStatusSnapshot) {
	data, err := json.Marshal(models.StreamMessage{Type: models.StreamSnapshot, Snapshot: &s})
	if err != nil {
		p.logger.Error("Failed to serialize snapshot for Kafka", "axis", s.Axis, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	defer cancel()
	key := fmt.Sprintf("%d-%d", s.CardID, s.Axis)
	if err := p.producer.Produce(ctx, []byte(key), data); err != nil {
		p.logger.Error("Failed to send data to Kafka", "axis", s.Axis, "error", err)
	}
}

func (p *publisher) stream(snapshots <-chan pubmodels.AxisStatusSnapshot, phases <-chan gts.PhaseEvent) {
	for snapshots != nil || phases != nil {
		var msg models.StreamMessage
		select {
		case s, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			msg = models.StreamMessage{Type: models.StreamSnapshot, Snapshot: &s}
		case ev, ok := <-phases:
			if !ok {
				phases = nil
				continue
			}
			msg = models.StreamMessage{
				Type:  models.StreamPhase,
				Phase: &models.PhaseChange{CardID: ev.CardID, Axis: ev.Axis, Phase: ev.Phase},
			}
		}

		data, err := json.Marshal(msg)
		if err != nil {
			p.logger.Error("Failed to serialize stream message", "type", msg.Type, "error", err)
			continue
		}
		p.hub.Broadcast(data)
	}
}
