package service

import (
	"context"

	"github.com/rs/zerolog"

	"paygate/internal/models"
	"paygate/internal/repository"
	"paygate/internal/ws"
	"paygate/pkg/paypal"
)

// EventService is the paypal.EventSink of the server: every event is stored,
// streamed to connected consoles and, for alert events, pushed over FCM.
type EventService struct {
	repo   *repository.EventRepository
	hub    *ws.Hub
	fcm    *FCMService
	alerts map[string]struct{}
	log    zerolog.Logger
}

func NewEventService(repo *repository.EventRepository, hub *ws.Hub, fcm *FCMService, alertEvents []string, log zerolog.Logger) *EventService {
	alerts := make(map[string]struct{}, len(alertEvents))
	for _, name := range alertEvents {
		alerts[name] = struct{}{}
	}
	return &EventService{repo: repo, hub: hub, fcm: fcm, alerts: alerts, log: log}
}

// Emit attempts every delivery step and returns the first failure.
func (s *EventService) Emit(ctx context.Context, ev paypal.Event) error {
	var firstErr error
	row := &models.PaymentEvent{
		EventID:   ev.ID.String(),
		Name:      ev.Name,
		Source:    ev.Source,
		RecordID:  ev.RecordID,
		Params:    ev.Params,
		CreatedAt: ev.OccurredAt,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log.Error().Err(err).Str("event", ev.Name).Msg("[EVENT] failed to store event")
		firstErr = err
	}

	if s.hub != nil {
		s.hub.BroadcastAll(map[string]interface{}{"type": "payment_event", "event": ev})
	}

	if _, ok := s.alerts[ev.Name]; ok {
		if err := s.fcm.SendAlert(ctx, ev); err != nil {
			s.log.Warn().Err(err).Str("event", ev.Name).Msg("[FCM] alert push failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	s.log.Debug().Str("event", ev.Name).Str("source", ev.Source).Uint("record_id", ev.RecordID).Msg("[EVENT] emitted")
	return firstErr
}
