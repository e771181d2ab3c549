package gmp

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// TimestampFormat is the layout of Envelope.LastUpdated in JSON: ISO-8601
// UTC with microsecond precision and a Z suffix.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Envelope is the persisted outcome of one scrape run.
// A successful run carries Source and Records; a failed run carries Err and
// no records.
type Envelope struct {
	LastUpdated time.Time
	Source      string
	Records     []Record
	Err         string
}

// NewEnvelope returns a success envelope for records fetched from source.
func NewEnvelope(now time.Time, source string, records []Record) *Envelope {
	if records == nil {
		records = []Record{}
	}
	return &Envelope{
		LastUpdated: now.UTC(),
		Source:      source,
		Records:     records,
	}
}

// NewFailureEnvelope returns a failure envelope carrying the message of err.
func NewFailureEnvelope(now time.Time, err error) *Envelope {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return &Envelope{
		LastUpdated: now.UTC(),
		Records:     []Record{},
		Err:         msg,
	}
}

// Failed reports whether the envelope describes a failed run.
func (e *Envelope) Failed() bool {
	return e.Err != ""
}

// Count returns the number of records.
func (e *Envelope) Count() int {
	return len(e.Records)
}

// Validate returns an error if the envelope contains invalid fields.
func (e *Envelope) Validate() error {
	if e.LastUpdated.IsZero() {
		return Errorf(EINVALID, "envelope timestamp required")
	}
	if e.Failed() {
		if len(e.Records) != 0 {
			return Errorf(EINVALID, "failure envelope must not carry records")
		}
		return nil
	}
	if e.Source == "" {
		return Errorf(EINVALID, "envelope source required")
	}
	return nil
}

type successJSON struct {
	LastUpdated string   `json:"last_updated"`
	Source      string   `json:"source"`
	Count       int      `json:"count"`
	Records     []Record `json:"records"`
}

type failureJSON struct {
	LastUpdated string   `json:"last_updated"`
	Error       string   `json:"error"`
	Records     []Record `json:"records"`
}

// MarshalJSON encodes the success or failure shape of the envelope.
// Count is always derived from Records.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	ts := e.LastUpdated.UTC().Format(TimestampFormat)
	records := e.Records
	if records == nil {
		records = []Record{}
	}
	if e.Failed() {
		return marshalJSON(failureJSON{
			LastUpdated: ts,
			Error:       e.Err,
			Records:     []Record{},
		})
	}
	return marshalJSON(successJSON{
		LastUpdated: ts,
		Source:      e.Source,
		Count:       len(records),
		Records:     records,
	})
}

// marshalJSON encodes v without escaping HTML characters ("Alpha & Sons").
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// EnvelopeWriter persists envelopes, replacing any previous one.
type EnvelopeWriter interface {
	WriteEnvelope(ctx context.Context, env *Envelope) error
}
