package source

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/app/rules"
)

// Payload is one frame of the remote line protocol: {"text", "color", "important"} or {"clear": true}
type Payload struct {
	Text      string
	Color     string
	Important *bool
	Clear     bool
}

// Line builds a payload carrying text with optional styling
func Line(text, color string, important *bool) Payload {
	return Payload{Text: text, Color: color, Important: important}
}

// ClearAll builds a payload that clears the view
func ClearAll() Payload {
	return Payload{Clear: true}
}

// Encode renders the payload as a JSON frame
func (p Payload) Encode() ([]byte, error) {
	data := []byte(`{}`)

	var err error

	if p.Clear {
		data, err = sjson.SetBytes(data, "clear", true)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToBuildPayload, err)
		}

		return data, nil
	}

	if data, err = sjson.SetBytes(data, "text", p.Text); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToBuildPayload, err)
	}

	if p.Color != "" {
		if data, err = sjson.SetBytes(data, "color", p.Color); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToBuildPayload, err)
		}
	}

	if p.Important != nil {
		if data, err = sjson.SetBytes(data, "important", *p.Important); err != nil {
			return nil, fmt.Errorf("%w: %w", errors.ErrFailedToBuildPayload, err)
		}
	}

	return data, nil
}

// DecodePayload parses and validates a JSON frame
func DecodePayload(data []byte) (Payload, error) {
	if !gjson.ValidBytes(data) {
		return Payload{}, fmt.Errorf("%w: not JSON", errors.ErrInvalidPayload)
	}

	frame := gjson.ParseBytes(data)
	if !frame.IsObject() {
		return Payload{}, fmt.Errorf("%w: not an object", errors.ErrInvalidPayload)
	}

	if frame.Get("clear").Bool() {
		return ClearAll(), nil
	}

	text := frame.Get("text")
	if text.Type != gjson.String {
		return Payload{}, fmt.Errorf("%w: text must be a string", errors.ErrInvalidPayload)
	}

	p := Payload{Text: text.String()}

	if color := frame.Get("color"); color.Exists() {
		if color.Type != gjson.String {
			return Payload{}, fmt.Errorf("%w: color must be a string", errors.ErrInvalidPayload)
		}

		if _, err := logview.ParseColor(color.String()); err != nil {
			return Payload{}, fmt.Errorf("%w: %w", errors.ErrInvalidPayload, err)
		}

		p.Color = color.String()
	}

	if important := frame.Get("important"); important.Exists() {
		if !important.IsBool() {
			return Payload{}, fmt.Errorf("%w: important must be a boolean", errors.ErrInvalidPayload)
		}

		v := important.Bool()
		p.Important = &v
	}

	return p, nil
}

// Apply delivers the payload to sink. Fields the sender left out come from the classifier
func (p Payload) Apply(c rules.Classifier, sink logview.Sink) {
	if p.Clear {
		sink.Clear()
		return
	}

	style := c.Classify(p.Text)

	if p.Color != "" {
		if color, err := logview.ParseColor(p.Color); err == nil {
			style.Color = color
		}
	}

	if p.Important != nil {
		style.Important = *p.Important
	}

	sink.AppendStyledLine(p.Text, style.Color, style.Important)
}
