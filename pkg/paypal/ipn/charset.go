package ipn

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
)

type decodeFunc func(string) (string, error)

// decoderFor returns a converter from the posted charset to UTF-8. An empty
// name means the body is already UTF-8.
func decoderFor(charset string) (decodeFunc, error) {
	if charset == "" {
		return func(s string) (string, error) { return s, nil }, nil
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	dec := enc.NewDecoder()
	return dec.String, nil
}

// Parse builds a record from a raw IPN body. The record is returned even
// when err is non-nil so the delivery can still be logged; err then
// describes why the form is invalid.
func Parse(raw string) (*Record, error) {
	rec := &Record{
		Fields:    make(map[string]string),
		Dates:     make(map[string]time.Time),
		Query:     raw,
		CreatedAt: time.Now().UTC(),
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return rec, err
	}
	decode, err := decoderFor(values.Get(FieldCharset))
	if err != nil {
		return rec, err
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var firstErr error
	for _, k := range keys {
		name, err := decode(k)
		if err != nil {
			return rec, fmt.Errorf("%s: %w", k, err)
		}
		name = strings.ToLower(name)
		if !IsKnownField(name) {
			continue
		}
		val, err := decode(values[k][0])
		if err != nil {
			return rec, fmt.Errorf("%s: %w", name, err)
		}
		if !isDateField(name) {
			rec.Fields[name] = val
			continue
		}
		if val == "" {
			continue
		}
		t, err := ParseDate(val)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", name, err)
			}
			continue
		}
		rec.Dates[name] = t
	}
	rec.TxnType = rec.Fields[FieldTxnType]
	rec.TestIPN = rec.Fields[FieldTestIPN] == "1"
	return rec, firstErr
}
