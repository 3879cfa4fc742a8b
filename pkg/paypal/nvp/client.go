// Package nvp is a client for PayPal's Name-Value-Pair API (Website Payments
// Pro and Express Checkout). Every call is logged as a Record through a Store
// before its outcome is reported to the caller.
package nvp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"paygate/pkg/paypal"
)

// Store persists records. Save is called exactly once per call that reached
// PayPal and got a decodable answer.
type Store interface {
	Save(ctx context.Context, rec *Record) (uint, error)
}

// Config is fixed for the lifetime of a Client.
type Config struct {
	Credentials paypal.Credentials
	Sandbox     bool
	// Endpoint overrides the live/sandbox NVP endpoint when set.
	Endpoint string
	// Version defaults to paypal.DefaultVersion.
	Version string
	// Debug logs every request and decoded response.
	Debug  bool
	Logger *zerolog.Logger
}

type Client struct {
	endpoint  string
	sandbox   bool
	signature string
	debug     bool
	transport paypal.Transport
	store     Store
	sink      paypal.EventSink
	log       zerolog.Logger
}

func NewClient(cfg Config, transport paypal.Transport, store Store, sink paypal.EventSink) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = paypal.NVPEndpointFor(cfg.Sandbox)
	}
	version := cfg.Version
	if version == "" {
		version = paypal.DefaultVersion
	}
	if sink == nil {
		sink = paypal.NopSink{}
	}
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	sig := url.Values{
		"USER":      {cfg.Credentials.User},
		"PWD":       {cfg.Credentials.Password},
		"SIGNATURE": {cfg.Credentials.Signature},
		"VERSION":   {version},
	}
	return &Client{
		endpoint:  endpoint,
		sandbox:   cfg.Sandbox,
		signature: sig.Encode() + "&",
		debug:     cfg.Debug,
		transport: transport,
		store:     store,
		sink:      sink,
		log:       log,
	}
}

// Call runs method with params. A flagged outcome is returned as
// *ProcessingFailure after the record has been stored; the descriptor's event
// fires only on success.
func (c *Client) Call(ctx context.Context, method string, params map[string]string) (*Record, error) {
	return c.call(ctx, method, params, nil)
}

func (c *Client) call(ctx context.Context, method string, params map[string]string, extra []string) (*Record, error) {
	m, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, method)
	}
	req := upperKeys(params)
	req["METHOD"] = method

	rec, err := c.fetch(ctx, m, req, extra)
	if err != nil {
		return nil, err
	}
	if rec.Flag {
		c.log.Warn().Str("method", method).Uint("record_id", rec.ID).
			Str("flag_code", rec.FlagCode).Str("flag_info", rec.FlagInfo).
			Msg("[NVP] call flagged")
		return nil, &ProcessingFailure{Message: rec.FlagInfo, Code: rec.FlagCode, Record: rec}
	}
	if m.Event != "" {
		c.emit(ctx, m.Event, req, rec)
	}
	return rec, nil
}

func (c *Client) fetch(ctx context.Context, m Method, params map[string]string, extra []string) (*Record, error) {
	required := append(append([]string(nil), m.Required...), extra...)
	req, err := Build(required, m.Defaults, params)
	if err != nil {
		return nil, err
	}
	body := c.signature + Encode(req)
	raw, err := c.transport.Send(ctx, c.endpoint, []byte(body))
	if err != nil {
		c.log.Error().Err(err).Str("method", m.Name).Msg("[NVP] transport failed")
		return nil, err
	}
	resp, err := Decode(string(raw))
	if err != nil {
		c.log.Error().Err(err).Str("method", m.Name).Msg("[NVP] undecodable response")
		return nil, err
	}
	if c.debug {
		c.log.Debug().Str("method", m.Name).
			Interface("request", sanitize(req)).
			Interface("response", resp).
			Msg("[NVP] exchange")
	}
	rec, err := newRecord(m.Name, req, resp, string(raw), paypal.OriginFrom(ctx))
	if err != nil {
		return nil, err
	}
	id, err := c.store.Save(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	c.log.Info().Str("method", m.Name).Uint("record_id", id).Str("ack", rec.Ack()).Msg("[NVP] call logged")
	return rec, nil
}

func (c *Client) emit(ctx context.Context, name string, params map[string]string, rec *Record) {
	ev := paypal.NewEvent(name, "nvp", rec.ID, sanitize(params), rec)
	if err := c.sink.Emit(ctx, ev); err != nil {
		c.log.Warn().Err(err).Str("event", name).Uint("record_id", rec.ID).Msg("[NVP] event sink failed")
	}
}

// ExpressCheckoutURL is the buyer redirect for a token from SetExpressCheckout.
func (c *Client) ExpressCheckoutURL(token string) string {
	return paypal.ExpressCheckoutURL(c.sandbox, token)
}
