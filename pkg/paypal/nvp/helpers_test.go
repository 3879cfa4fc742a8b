package nvp

import (
	"context"
	"sync"

	"paygate/pkg/paypal"
)

type memStore struct {
	mu      sync.Mutex
	records []*Record
	err     error
}

func (s *memStore) Save(_ context.Context, rec *Record) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.records = append(s.records, rec)
	return uint(len(s.records)), nil
}

type recordingSink struct {
	mu     sync.Mutex
	events []paypal.Event
	err    error
}

func (s *recordingSink) Emit(_ context.Context, ev paypal.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func (s *recordingSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Name)
	}
	return out
}

// stubTransport answers every request with a fixed body and remembers what was sent.
type stubTransport struct {
	response string
	err      error
	calls    int
	endpoint string
	body     string
}

func (t *stubTransport) Send(_ context.Context, endpoint string, body []byte) ([]byte, error) {
	t.calls++
	t.endpoint = endpoint
	t.body = string(body)
	if t.err != nil {
		return nil, t.err
	}
	return []byte(t.response), nil
}

func (t *stubTransport) sent() map[string]string {
	m, err := Decode(t.body)
	if err != nil {
		panic(err)
	}
	return m
}

func newTestClient(response string) (*Client, *stubTransport, *memStore, *recordingSink) {
	tr := &stubTransport{response: response}
	store := &memStore{}
	sink := &recordingSink{}
	c := NewClient(Config{
		Credentials: paypal.Credentials{User: "api_user", Password: "secret", Signature: "sig"},
		Sandbox:     true,
	}, tr, store, sink)
	return c, tr, store, sink
}

func directPaymentParams() map[string]string {
	return map[string]string{
		"CREDITCARDTYPE": "Visa",
		"ACCT":           "4111111111111111",
		"EXPDATE":        "122025",
		"CVV2":           "123",
		"IPADDRESS":      "1.2.3.4",
		"FIRSTNAME":      "A",
		"LASTNAME":       "B",
		"STREET":         "1 Main",
		"CITY":           "X",
		"STATE":          "CA",
		"COUNTRYCODE":    "US",
		"ZIP":            "00000",
		"AMT":            "10.00",
	}
}
