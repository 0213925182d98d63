package events

import (
	"encoding/json"

	"github.com/apex/log"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/split-studio/src/shared/lib/rabbitmq"
	"github.com/veedubyou/split-studio/src/shared/orchestrator"
)

const PhaseChangedType = "split_phase_changed"

var _ orchestrator.Observer = RabbitMQObserver{}

// RabbitMQObserver publishes every phase change to the events queue.
// Publish failures are logged and otherwise ignored.
type RabbitMQObserver struct {
	publisher rabbitmq.Publisher
}

func NewRabbitMQObserver(publisher rabbitmq.Publisher) RabbitMQObserver {
	return RabbitMQObserver{
		publisher: publisher,
	}
}

func (r RabbitMQObserver) PhaseChanged(transition orchestrator.Transition) {
	logger := log.WithFields(log.Fields{
		"session_id": transition.SessionID,
		"from":       transition.From,
		"to":         transition.To,
	})

	body, err := json.Marshal(transition)
	if err != nil {
		logger.WithError(err).Error("Failed to marshal phase change")
		return
	}

	err = r.publisher.Publish(amqp091.Publishing{
		Type: PhaseChangedType,
		Body: body,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to publish phase change")
	}
}

var _ orchestrator.Observer = LogObserver{}

type LogObserver struct{}

func (LogObserver) PhaseChanged(transition orchestrator.Transition) {
	entry := log.WithFields(log.Fields{
		"session_id": transition.SessionID,
		"from":       transition.From,
		"to":         transition.To,
		"file_name":  transition.FileName,
	})

	if transition.To == orchestrator.Error {
		entry.WithField("message", transition.Message).Warn("Split page phase changed")
		return
	}

	entry.Info("Split page phase changed")
}
