package ipn

import (
	"context"
	"strings"

	"paygate/pkg/paypal"
)

const (
	postbackPrefix = "cmd=_notify-validate&"
	verdictOK      = "VERIFIED"
)

// Result is PayPal's verdict on a postback. Response is the raw answer, kept
// for the record.
type Result struct {
	Verified bool
	Response string
}

// Verifier asks PayPal whether an IPN body really came from PayPal.
type Verifier struct {
	endpoint  string
	transport paypal.Transport
}

func NewVerifier(endpoint string, transport paypal.Transport) *Verifier {
	return &Verifier{endpoint: endpoint, transport: transport}
}

// Verify posts the body back unchanged. A transport failure returns the
// error; any answer other than VERIFIED is a negative verdict, not an error.
func (v *Verifier) Verify(ctx context.Context, raw string) (Result, error) {
	resp, err := v.transport.Send(ctx, v.endpoint, []byte(postbackPrefix+raw))
	if err != nil {
		return Result{}, err
	}
	body := string(resp)
	return Result{
		Verified: strings.TrimSpace(body) == verdictOK,
		Response: body,
	}, nil
}
