package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"paygate/pkg/paypal"
)

// messenger is the part of *messaging.Client the service uses.
type messenger interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

// FCMService pushes payment alerts to a Firebase Cloud Messaging topic.
type FCMService struct {
	client messenger
	topic  string
}

// NewFCMService returns nil when Firebase is not configured or fails to
// initialise; a nil *FCMService is safe to use and sends nothing.
func NewFCMService(serviceAccountPath, topic string, log zerolog.Logger) *FCMService {
	if serviceAccountPath == "" {
		return nil
	}
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Error().Err(err).Msg("[FCM] failed to init Firebase app")
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[FCM] failed to get Messaging client")
		return nil
	}
	return &FCMService{client: client, topic: topic}
}

func newFCMServiceWithClient(client messenger, topic string) *FCMService {
	return &FCMService{client: client, topic: topic}
}

// SendAlert pushes ev to the alert topic. Data values are strings as FCM
// requires.
func (s *FCMService) SendAlert(ctx context.Context, ev paypal.Event) error {
	if s == nil || s.topic == "" {
		return nil
	}
	data := map[string]string{
		"event_id":  ev.ID.String(),
		"event":     ev.Name,
		"source":    ev.Source,
		"record_id": fmt.Sprintf("%d", ev.RecordID),
	}
	msg := &messaging.Message{
		Topic: s.topic,
		Notification: &messaging.Notification{
			Title: alertTitle(ev.Name),
			Body:  fmt.Sprintf("%s record #%d", ev.Source, ev.RecordID),
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	if _, err := s.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm send: %w", err)
	}
	return nil
}

func alertTitle(event string) string {
	switch event {
	case paypal.EventIPNPaymentFlagged:
		return "PayPal payment flagged"
	case paypal.EventIPNRecurringCancel, paypal.EventProRecurringCancel:
		return "Recurring profile cancelled"
	case paypal.EventIPNSubscriptionCancel:
		return "Subscription cancelled"
	case paypal.EventIPNSubscriptionEOT:
		return "Subscription ended"
	default:
		return "PayPal event: " + event
	}
}
