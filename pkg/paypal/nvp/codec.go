package nvp

import (
	"net/url"
	"strings"
)

// Encode form-encodes m. Keys are sorted so the output is stable.
func Encode(m map[string]string) string {
	v := make(url.Values, len(m))
	for k, val := range m {
		v.Set(k, val)
	}
	return v.Encode()
}

// Decode parses a PayPal NVP response body. Every &-separated segment must
// carry a key and an '='; the value is split at the first '='.
func Decode(body string) (map[string]string, error) {
	out := make(map[string]string)
	for _, seg := range strings.Split(body, "&") {
		rawKey, rawValue, ok := strings.Cut(seg, "=")
		if !ok {
			return nil, &MalformedResponseError{Segment: seg, Reason: "missing '='"}
		}
		if rawKey == "" {
			return nil, &MalformedResponseError{Segment: seg, Reason: "empty key"}
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, &MalformedResponseError{Segment: seg, Reason: err.Error()}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, &MalformedResponseError{Segment: seg, Reason: err.Error()}
		}
		out[key] = value
	}
	return out, nil
}
