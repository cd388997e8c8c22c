package reserva

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	UnknownErrorMessage = "Unknown error"

	detailSeparator = " | "
)

// Kind classifies why a call to the reservation API failed.
type Kind int

const (
	// KindTransport means the request never produced a response.
	KindTransport Kind = iota + 1
	// KindStatus means the server answered with an unexpected status and no usable error body.
	KindStatus
	// KindDecode means the response body could not be read or was not the expected JSON.
	KindDecode
	// KindValidation means the server rejected the request with a detail payload.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is returned by every API client call that fails.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     *Detail
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != nil:
		return fmt.Sprintf("error %s, status %d: %s", e.Kind, e.StatusCode, e.Detail.Message())
	case e.Err != nil:
		return fmt.Sprintf("error %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("error %s, status %d", e.Kind, e.StatusCode)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Payload is the error body the API sends with non-2xx responses.
type Payload struct {
	Detail *Detail `json:"detail"`
}

// Detail holds either a plain message or a list of validation messages.
type Detail struct {
	Text     string
	Messages []string
	isList   bool
}

type detailItem struct {
	Msg json.RawMessage `json:"msg"`
}

// text renders msg the way it would print in a browser: strings unquoted,
// other scalars as written, missing or null as empty.
func (i detailItem) text() string {
	raw := bytes.TrimSpace(i.Msg)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	return string(raw)
}

// UnmarshalJSON accepts a string or an array of {"msg": ...} objects. Any
// other shape leaves the detail empty so Message falls back to the generic text.
func (d *Detail) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		d.Text = text
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		d.isList = true
		d.Messages = make([]string, 0, len(items))

		for _, raw := range items {
			item := detailItem{}
			_ = json.Unmarshal(raw, &item)
			d.Messages = append(d.Messages, item.text())
		}
	}

	return nil
}

// Message renders the detail for a user.
func (d *Detail) Message() string {
	if d == nil {
		return UnknownErrorMessage
	}

	if d.isList {
		return strings.Join(d.Messages, detailSeparator)
	}

	if d.Text == "" {
		return UnknownErrorMessage
	}

	return d.Text
}

// NewDetail builds a plain-text detail.
func NewDetail(text string) *Detail {
	return &Detail{Text: text}
}

// NewDetailList builds a list detail from validation messages.
func NewDetailList(messages ...string) *Detail {
	return &Detail{Messages: messages, isList: true}
}

// ErrorMessage turns any error from the API client into the text shown to a user.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != nil {
		return apiErr.Detail.Message()
	}

	return UnknownErrorMessage
}

// IsKind reports whether err is an API error of the given kind.
func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
