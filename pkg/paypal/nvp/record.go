package nvp

import (
	"strings"
	"time"

	"paygate/pkg/paypal"
)

// TimestampFormat is the layout of PayPal's TIMESTAMP response field.
const TimestampFormat = "2006-01-02T15:04:05Z"

const (
	AckSuccess            = "Success"
	AckSuccessWithWarning = "SuccessWithWarning"
	AckFailure            = "Failure"
)

// Record is the logged result of one NVP call.
type Record struct {
	ID     uint   `json:"id"`
	Method string `json:"method"`
	// Fields holds schema-filtered values keyed by lower-case field name.
	// The timestamp lives in Timestamp, not here.
	Fields    map[string]string `json:"fields"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Flag      bool              `json:"flag"`
	FlagCode  string            `json:"flag_code,omitempty"`
	FlagInfo  string            `json:"flag_info,omitempty"`
	IPAddress string            `json:"ip_address,omitempty"`
	UserID    *uint             `json:"user_id,omitempty"`
	Query     string            `json:"query"`
	Response  string            `json:"response"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r *Record) Get(field string) string {
	return r.Fields[strings.ToLower(field)]
}

func (r *Record) Ack() string { return r.Get(FieldAck) }

func (r *Record) SetFlag(info, code string) {
	r.Flag = true
	r.FlagInfo = info
	r.FlagCode = code
}

// newRecord builds a record from the sent request and PayPal's decoded reply.
// Response values win over request values with the same name.
func newRecord(method string, request, response map[string]string, rawResponse string, origin paypal.Origin) (*Record, error) {
	rec := &Record{
		Method:    method,
		Fields:    make(map[string]string),
		IPAddress: origin.IPAddress,
		UserID:    origin.UserID,
		Query:     Encode(sanitize(request)),
		Response:  rawResponse,
		CreatedAt: time.Now().UTC(),
	}
	for _, src := range []map[string]string{request, response} {
		for k, v := range src {
			if IsKnownField(k) {
				rec.Fields[strings.ToLower(k)] = v
			}
		}
	}
	if ts, ok := rec.Fields[FieldTimestamp]; ok {
		t, err := time.ParseInLocation(TimestampFormat, ts, time.UTC)
		if err != nil {
			return nil, &MalformedResponseError{Segment: "TIMESTAMP=" + ts, Reason: err.Error()}
		}
		rec.Timestamp = &t
		delete(rec.Fields, FieldTimestamp)
	}
	rec.applyAck(upperKeys(response))
	return rec, nil
}

func (r *Record) applyAck(resp map[string]string) {
	info := resp["L_LONGMESSAGE0"]
	if info == "" {
		info = resp["L_SHORTMESSAGE0"]
	}
	switch resp["ACK"] {
	case AckSuccess:
	case AckSuccessWithWarning:
		r.FlagInfo = info
	default:
		r.SetFlag(info, resp["L_ERRORCODE0"])
	}
}

// sanitize drops card data from a request before it is stored or emitted.
func sanitize(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if _, ok := restrictedFields[strings.ToUpper(k)]; ok {
			continue
		}
		out[k] = v
	}
	return out
}

// FormatTimestamp renders t the way PayPal expects in date request fields
// such as PROFILESTARTDATE.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
