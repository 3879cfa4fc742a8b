// Package paypal holds what the NVP client and the IPN listener share: the
// transport and event sink collaborators, endpoints, credentials and the
// request origin carried on a context.
package paypal

import (
	"context"
	"net/url"
)

// Origin identifies who triggered a call: the remote address of the HTTP
// request and, when known, the application user behind it.
type Origin struct {
	IPAddress string
	UserID    *uint
}

type originKey struct{}

func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the zero Origin when ctx carries none.
func OriginFrom(ctx context.Context) Origin {
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}

// Credentials is the NVP API signature triple.
type Credentials struct {
	User      string
	Password  string
	Signature string
}

const (
	NVPEndpoint             = "https://api-3t.paypal.com/nvp"
	NVPSandboxEndpoint      = "https://api-3t.sandbox.paypal.com/nvp"
	PostbackEndpoint        = "https://www.paypal.com/cgi-bin/webscr"
	PostbackSandboxEndpoint = "https://www.sandbox.paypal.com/cgi-bin/webscr"
	expressEndpoint         = "https://www.paypal.com/webscr?cmd=_express-checkout&"
	expressSandboxEndpoint  = "https://www.sandbox.paypal.com/webscr?cmd=_express-checkout&"

	// DefaultVersion is the NVP API version sent with every request.
	DefaultVersion = "74.0"
)

// NVPEndpointFor picks the NVP endpoint for the environment.
func NVPEndpointFor(sandbox bool) string {
	if sandbox {
		return NVPSandboxEndpoint
	}
	return NVPEndpoint
}

// PostbackEndpointFor picks the IPN verification endpoint for the environment.
func PostbackEndpointFor(sandbox bool) string {
	if sandbox {
		return PostbackSandboxEndpoint
	}
	return PostbackEndpoint
}

// ExpressCheckoutURL is where the buyer is redirected after SetExpressCheckout.
func ExpressCheckoutURL(sandbox bool, token string) string {
	base := expressEndpoint
	if sandbox {
		base = expressSandboxEndpoint
	}
	return base + url.Values{"token": {token}}.Encode()
}
