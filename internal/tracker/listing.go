package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Media identifies the title being looked up on trackers.
type Media struct {
	TMDbID int64
	Title  string
	// Kind is "movie" or "tv".
	Kind string
}

// Listing is one release returned by a tracker.
type Listing struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size"`
	Seeders   int64     `json:"seeders"`
	Leechers  int64     `json:"leechers"`
	Freeleech Freeleech `json:"freeleech"`
	Type      string    `json:"type,omitempty"`
}

// Freeleech is the tracker's freeleech marker normalised to display text.
// Trackers send it as a percentage string, a boolean, or a number.
type Freeleech string

// UnmarshalJSON accepts string, boolean, and numeric encodings.
func (f *Freeleech) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case bytes.Equal(data, []byte("true")):
		*f = "Yes"
	case bytes.Equal(data, []byte("false")):
		*f = "No"
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Freeleech(strings.TrimSpace(s))
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("freeleech: unsupported value %s", data)
		}
		*f = Freeleech(strconv.FormatFloat(n, 'f', -1, 64) + "%")
	}
	return nil
}

func (f Freeleech) String() string { return string(f) }

var (
	errNotObject = errors.New("response is not a JSON object")
	errDataShape = errors.New("response data is not an array")
)

// counter decodes non-negative integers sent as numbers or numeric strings.
type counter int64

func (c *counter) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*c = 0
			return nil
		}
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) {
		return fmt.Errorf("expected number, got %s", data)
	}
	if n < 0 {
		n = 0
	}
	*c = counter(n)
	return nil
}

// label decodes an optional string field, tolerating numbers.
type label string

func (l *label) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = label(strings.TrimSpace(s))
	case data[0] == '{' || data[0] == '[':
		// Some forks nest the type as an object; it carries no usable token.
		*l = ""
	default:
		*l = label(strings.TrimSpace(string(data)))
	}
	return nil
}

type rawItem struct {
	Attributes json.RawMessage `json:"attributes"`
}

type rawAttributes struct {
	Name      *string   `json:"name"`
	Size      counter   `json:"size"`
	Seeders   counter   `json:"seeders"`
	Leechers  counter   `json:"leechers"`
	Freeleech Freeleech `json:"freeleech"`
	Type      label     `json:"type"`
}

// Skipped records a listing record that could not be decoded.
type Skipped struct {
	Index  int
	Reason string
}

// decodeListings parses the tracker envelope. A body that is not an object,
// or whose data member is not an array, is an error; individual malformed
// records are skipped and reported.
func decodeListings(body []byte) ([]Listing, []Skipped, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, nil, errNotObject
		}
		return nil, nil, fmt.Errorf("decode response: %w", err)
	}
	if envelope == nil {
		return nil, nil, errNotObject
	}
	data, ok := envelope["data"]
	if !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, nil, errDataShape
	}

	listings := make([]Listing, 0, len(items))
	var skipped []Skipped
	for idx, item := range items {
		listing, err := decodeListing(item)
		if err != nil {
			skipped = append(skipped, Skipped{Index: idx, Reason: err.Error()})
			continue
		}
		listings = append(listings, listing)
	}
	return listings, skipped, nil
}

func decodeListing(item json.RawMessage) (Listing, error) {
	var raw rawItem
	if err := json.Unmarshal(item, &raw); err != nil {
		return Listing{}, fmt.Errorf("item is not an object: %w", err)
	}
	if len(raw.Attributes) == 0 || bytes.Equal(bytes.TrimSpace(raw.Attributes), []byte("null")) {
		return Listing{}, errors.New("missing attributes")
	}
	var attrs rawAttributes
	if err := json.Unmarshal(raw.Attributes, &attrs); err != nil {
		return Listing{}, fmt.Errorf("decode attributes: %w", err)
	}
	if attrs.Name == nil {
		return Listing{}, errors.New("missing name")
	}
	return Listing{
		Name:      *attrs.Name,
		SizeBytes: int64(attrs.Size),
		Seeders:   int64(attrs.Seeders),
		Leechers:  int64(attrs.Leechers),
		Freeleech: attrs.Freeleech,
		Type:      string(attrs.Type),
	}, nil
}
