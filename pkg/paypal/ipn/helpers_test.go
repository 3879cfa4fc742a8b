package ipn

import (
	"context"
	"sync"

	"paygate/pkg/paypal"
)

type memStore struct {
	mu        sync.Mutex
	records   []*Record
	completed map[string]bool
	err       error
	dupErr    error
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

func (s *memStore) HasCompletedTxn(_ context.Context, txnID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dupErr != nil {
		return false, s.dupErr
	}
	return s.completed[txnID], nil
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

// stubTransport answers postbacks with a fixed verdict.
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

const paymentBody = "txn_id=51403485VH153354B&txn_type=web_accept&payment_status=Completed" +
	"&receiver_email=seller%40example.com&mc_gross=10.00&mc_currency=USD" +
	"&payment_date=18%3A30%3A30+Jan+01%2C+2009+PST&payer_email=buyer%40example.com" +
	"&verify_sign=AbC&not_a_field=x"
