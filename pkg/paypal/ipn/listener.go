// Package ipn receives PayPal Instant Payment Notifications, verifies them
// with a postback, logs each delivery as a Record and classifies it into
// events.
package ipn

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"paygate/pkg/paypal"
)

// Store persists IPN records.
type Store interface {
	Save(ctx context.Context, rec *Record) (uint, error)
	// HasCompletedTxn reports whether a Completed record for txnID exists.
	HasCompletedTxn(ctx context.Context, txnID string) (bool, error)
}

// ItemCheck inspects a verified transaction, e.g. that the amount matches the
// order. A true flag marks the record with reason.
type ItemCheck func(ctx context.Context, rec *Record) (flag bool, reason string)

type Config struct {
	// ReceiverEmail, when set, must match the notification's receiver_email.
	ReceiverEmail string
	// PostbackEndpoint and SandboxPostbackEndpoint override PayPal's.
	PostbackEndpoint        string
	SandboxPostbackEndpoint string
	ItemCheck               ItemCheck
	Logger                  *zerolog.Logger
}

type Listener struct {
	receiverEmail string
	itemCheck     ItemCheck
	live          *Verifier
	sandbox       *Verifier
	store         Store
	sink          paypal.EventSink
	log           zerolog.Logger
}

func NewListener(cfg Config, transport paypal.Transport, store Store, sink paypal.EventSink) *Listener {
	live := cfg.PostbackEndpoint
	if live == "" {
		live = paypal.PostbackEndpoint
	}
	sandbox := cfg.SandboxPostbackEndpoint
	if sandbox == "" {
		sandbox = paypal.PostbackSandboxEndpoint
	}
	if sink == nil {
		sink = paypal.NopSink{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Listener{
		receiverEmail: cfg.ReceiverEmail,
		itemCheck:     cfg.ItemCheck,
		live:          NewVerifier(live, transport),
		sandbox:       NewVerifier(sandbox, transport),
		store:         store,
		sink:          sink,
		log:           log,
	}
}

// Process handles one delivery. Invalid or unverifiable notifications are
// stored flagged; only storage failures are returned, so PayPal redelivers.
func (l *Listener) Process(ctx context.Context, raw string) (*Record, error) {
	rec, err := Parse(raw)
	origin := paypal.OriginFrom(ctx)
	rec.IPAddress = origin.IPAddress
	rec.UserID = origin.UserID

	if err != nil {
		rec.SetFlag(fmt.Sprintf("Invalid form. (%s)", err), "")
	} else {
		l.verifyPostback(ctx, rec)
	}
	if !rec.Flag && rec.IsTransaction() {
		if err := l.verifyTransaction(ctx, rec); err != nil {
			return nil, err
		}
	}

	id, err := l.store.Save(ctx, rec)
	if err != nil {
		l.log.Error().Err(err).Str("txn_id", rec.TxnID()).Msg("[IPN] failed to store notification")
		return nil, err
	}
	rec.ID = id

	level := zerolog.InfoLevel
	if rec.Flag {
		level = zerolog.WarnLevel
	}
	l.log.WithLevel(level).Uint("record_id", id).Str("txn_id", rec.TxnID()).
		Str("txn_type", rec.TxnType).Bool("test_ipn", rec.TestIPN).
		Str("flag_info", rec.FlagInfo).Msg("[IPN] notification stored")

	if err := Notify(ctx, l.sink, rec); err != nil {
		l.log.Warn().Err(err).Uint("record_id", id).Msg("[IPN] event sink failed")
	}
	return rec, nil
}

func (l *Listener) verifyPostback(ctx context.Context, rec *Record) {
	v := l.live
	if rec.TestIPN {
		v = l.sandbox
	}
	res, err := v.Verify(ctx, rec.Query)
	if err != nil {
		l.log.Error().Err(err).Str("endpoint", v.endpoint).Msg("[IPN] postback failed")
		rec.SetFlag(fmt.Sprintf("Invalid postback. (%s)", err), "")
		return
	}
	rec.Response = res.Response
	if !res.Verified {
		rec.SetFlag(fmt.Sprintf("Invalid postback. (%s)", res.Response), "")
	}
}

func (l *Listener) verifyTransaction(ctx context.Context, rec *Record) error {
	status := rec.PaymentStatus()
	if !isValidPaymentStatus(status) {
		rec.SetFlag(fmt.Sprintf("Invalid payment_status. (%s)", status), "")
	}
	if status == StatusCompleted {
		dup, err := l.store.HasCompletedTxn(ctx, rec.TxnID())
		if err != nil {
			return fmt.Errorf("ipn duplicate check: %w", err)
		}
		if dup {
			rec.SetFlag(fmt.Sprintf("Duplicate txn_id. (%s)", rec.TxnID()), "")
		}
	}
	if l.receiverEmail != "" && !strings.EqualFold(rec.ReceiverEmail(), l.receiverEmail) {
		rec.SetFlag(fmt.Sprintf("Invalid receiver_email. (%s)", rec.ReceiverEmail()), "")
	}
	if l.itemCheck != nil {
		if flag, reason := l.itemCheck(ctx, rec); flag {
			rec.SetFlag(reason, "")
		}
	}
	return nil
}
