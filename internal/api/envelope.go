package api

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// MatchKind tells which response shape a body was decoded from.
type MatchKind int

const (
	NoMatch MatchKind = iota
	EnvelopeMatch
	RawMatch
)

func (m MatchKind) String() string {
	switch m {
	case EnvelopeMatch:
		return "envelope"
	case RawMatch:
		return "raw"
	default:
		return "none"
	}
}

// envelope is the backend's standard wrapper: { success, data, message }.
// success is a pointer so that a body without it is not taken for an envelope.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message *string         `json:"message"`
}

func (e *envelope) message() string {
	if e.Message == nil {
		return ""
	}
	return *e.Message
}

func (e *envelope) hasData() bool {
	trimmed := bytes.TrimSpace(e.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// Match is the outcome of matching a 2xx body against T.
type Match[T any] struct {
	Kind MatchKind
	// Value is set for RawMatch, and for EnvelopeMatch when HasPayload.
	Value      T
	HasPayload bool
	// Success and Message come from the envelope (EnvelopeMatch only).
	Success bool
	Message string
}

// MatchBody tries the envelope shape first and the raw T shape second.
// An envelope whose data does not fit T is NoMatch on purpose: the
// envelope keys would otherwise be read leniently as a raw struct T.
// A raw body only matches a struct T when it shares at least one field
// with it, and a raw null only matches a nilable T.
func MatchBody[T any](body []byte) Match[T] {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil {
		m := Match[T]{
			Kind:    EnvelopeMatch,
			Success: *env.Success,
			Message: env.message(),
		}
		if env.hasData() {
			if err := json.Unmarshal(env.Data, &m.Value); err != nil {
				return Match[T]{Kind: NoMatch}
			}
			m.HasPayload = true
		}
		return m
	}

	if !rawFits[T](body) {
		return Match[T]{Kind: NoMatch}
	}
	var raw T
	if err := json.Unmarshal(body, &raw); err == nil {
		return Match[T]{Kind: RawMatch, Value: raw, HasPayload: true}
	}

	return Match[T]{Kind: NoMatch}
}

var unmarshalerType = reflect.TypeFor[json.Unmarshaler]()

// rawFits rejects raw bodies that encoding/json would accept for T without
// carrying any of T's data: null for a value type, or an object with none
// of T's fields. Types with their own UnmarshalJSON decide for themselves.
func rawFits[T any](body []byte) bool {
	typ := reflect.TypeFor[T]()
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nilable(typ)
	}

	for {
		if typ.Implements(unmarshalerType) || reflect.PointerTo(typ).Implements(unmarshalerType) {
			return true
		}
		if typ.Kind() != reflect.Pointer {
			break
		}
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return true
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		// not an object, json.Unmarshal into T reports it
		return true
	}
	fields := make(map[string]bool)
	collectJSONFields(typ, fields)
	for k := range keys {
		if fields[strings.ToLower(k)] {
			return true
		}
	}
	return false
}

func nilable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return true
	}
	return false
}

// collectJSONFields adds the lower-cased JSON names of typ's fields,
// including those promoted from embedded structs.
func collectJSONFields(typ reflect.Type, fields map[string]bool) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectJSONFields(ft, fields)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[strings.ToLower(name)] = true
	}
}

// DecodeResponse turns an HTTP status and body into a T or an *Error.
// A successful envelope without data yields the zero T, so callers that
// expect "no payload" use Void or a pointer type.
func DecodeResponse[T any](status int, body []byte) (T, error) {
	var zero T

	if status < 200 || status >= 300 {
		var env envelope
		if err := json.Unmarshal(body, &env); err == nil && env.message() != "" {
			return zero, NewServerError(status, env.message())
		}
		return zero, NewHTTPError(status)
	}

	m := MatchBody[T](body)
	switch m.Kind {
	case EnvelopeMatch:
		if m.HasPayload {
			return m.Value, nil
		}
		if m.Success {
			return zero, nil
		}
		return zero, NewServerError(status, m.Message)
	case RawMatch:
		return m.Value, nil
	default:
		return zero, NewDecodingError(status)
	}
}

// Void is the payload type of endpoints that return no data.
type Void struct{}

// UnmarshalJSON accepts any payload, so a delete that echoes the removed
// document still decodes.
func (v *Void) UnmarshalJSON([]byte) error {
	return nil
}
