package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/careops/hospital-platform/internal/email"
	"github.com/careops/hospital-platform/pkg/messaging"
)

// Notifier consumes published events and sends operational mail. Delivery
// is best effort; a failed send is logged and the event is not replayed.
type Notifier struct {
	broker    messaging.Broker
	sender    email.Sender
	recipient string
	logger    zerolog.Logger
}

func NewNotifier(broker messaging.Broker, sender email.Sender, recipient string, logger zerolog.Logger) *Notifier {
	return &Notifier{broker: broker, sender: sender, recipient: recipient, logger: logger}
}

func (n *Notifier) Run(ctx context.Context) error {
	messages, err := n.broker.Subscribe(ctx, EventsChannel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to events: %w", err)
	}

	n.logger.Info().Str("channel", EventsChannel).Msg("notifier started")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info().Msg("notifier stopped")
			return nil
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			n.handle(raw)
		}
	}
}

func (n *Notifier) handle(raw []byte) {
	var evt messaging.Event
	if err := json.Unmarshal(raw, &evt); err != nil {
		n.logger.Error().Err(err).Msg("discarding malformed event")
		return
	}

	subject, body, ok := renderNotification(evt)
	if !ok {
		return
	}

	if err := n.sender.Send(n.recipient, subject, body); err != nil {
		n.logger.Error().Err(err).
			Str("event_type", evt.Type).
			Msg("failed to send notification")
		return
	}

	n.logger.Info().Str("event_type", evt.Type).Msg("notification sent")
}
