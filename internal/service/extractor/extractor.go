// Package extractor pulls a booking summary out of model output.
package extractor

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/jwalitptl/zyra-api/internal/model"
)

// Extract looks at the span between the first '{' and the last '}' of text and
// returns the booking it describes. ok is false when there is no such span, it
// is not a single JSON object, or any required field is missing or blank.
func Extract(text string) (intent model.BookingIntent, ok bool) {
	span, found := jsonSpan(text)
	if !found {
		return model.BookingIntent{}, false
	}

	dec := json.NewDecoder(strings.NewReader(span))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return model.BookingIntent{}, false
	}
	// "{...} prose {...}" decodes the first object only; reject the leftovers.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return model.BookingIntent{}, false
	}

	intent = model.BookingIntent{
		Name:    field(fields, "name"),
		Phone:   field(fields, "phone"),
		Service: field(fields, "service"),
		Date:    field(fields, "date"),
		Time:    field(fields, "time"),
		Notes:   field(fields, "notes"),
	}
	if !intent.Complete() {
		return model.BookingIntent{}, false
	}
	return intent, true
}

func jsonSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// field returns strings and numbers as written; any other type reads as "".
func field(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
