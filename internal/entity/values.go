package entity

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Tokens is a choice or multi-select field. It decodes a string, a list, a
// bool or a number into a token list. Other shapes decode to an empty list.
type Tokens []string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tokens) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*t = nil
		return nil
	}
	*t = tokensOf(raw)
	return nil
}

// Has reports whether token is present, ignoring case and surrounding space.
func (t Tokens) Has(token string) bool {
	token = strings.TrimSpace(token)
	for _, v := range t {
		if strings.EqualFold(strings.TrimSpace(v), token) {
			return true
		}
	}
	return false
}

// HasAny reports whether any of tokens is present.
func (t Tokens) HasAny(tokens ...string) bool {
	for _, token := range tokens {
		if t.Has(token) {
			return true
		}
	}
	return false
}

// Without returns the tokens not matching any of skip.
func (t Tokens) Without(skip ...string) Tokens {
	var out Tokens
	for _, v := range t {
		if !Tokens(skip).Has(v) {
			out = append(out, v)
		}
	}
	return out
}

func tokensOf(v any) []string {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		return []string{s}
	case bool:
		if x {
			return []string{"Yes"}
		}
		return nil
	case float64:
		return []string{strconv.FormatFloat(x, 'f', -1, 64)}
	case []any:
		var out []string
		for _, e := range x {
			out = append(out, tokensOf(e)...)
		}
		return out
	default:
		return nil
	}
}

// Checkbox is a boolean field that also accepts "yes", "true", "checked"
// and non-zero numbers.
type Checkbox bool

// UnmarshalJSON implements json.Unmarshaler.
func (c *Checkbox) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*c = false
		return nil
	}
	switch x := raw.(type) {
	case bool:
		*c = Checkbox(x)
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "yes", "true", "checked", "1", "x":
			*c = true
		default:
			*c = false
		}
	case float64:
		*c = x != 0
	case []any:
		*c = len(x) > 0
	default:
		*c = false
	}
	return nil
}

// Text is a free-text field. Numbers, bools and lists are rendered as text.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*t = ""
		return nil
	}
	switch x := raw.(type) {
	case string:
		*t = Text(x)
	case nil:
		*t = ""
	default:
		*t = Text(strings.Join(tokensOf(x), ", "))
	}
	return nil
}

// String returns the text verbatim.
func (t Text) String() string { return string(t) }

// Blank reports whether the text is empty after trimming.
func (t Text) Blank() bool { return strings.TrimSpace(string(t)) == "" }

// Number is an optional numeric field. Numeric strings are accepted.
type Number struct {
	Value float64
	Valid bool
}

// NewNumber returns a valid Number.
func NewNumber(v float64) Number { return Number{Value: v, Valid: true} }

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	switch x := raw.(type) {
	case float64:
		*n = NewNumber(x)
	case string:
		if v, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			*n = NewNumber(v)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil for an absent number.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
