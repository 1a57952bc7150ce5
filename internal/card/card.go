package card

import "encoding/json"

// SchemaVersion is the card schema understood by the Lark renderer.
const SchemaVersion = "2.0"

// Card is a finished interactive-card document. It is immutable once
// produced; Build hands out a fresh Card on every call.
type Card struct {
	payload  Block
	language string
}

// New assembles a card document from a header, body elements, and an optional
// style config block. A nil header or config is omitted from the payload
// entirely. New trusts its caller to have validated structure.
func New(header Block, elements []Block, config Block, schema string) *Card {
	if schema == "" {
		schema = SchemaVersion
	}
	payload := Block{
		"schema": schema,
		"body":   Body(elements),
	}
	if header != nil {
		payload["header"] = header
	}
	if config != nil {
		payload["config"] = config
	}
	return &Card{payload: payload}
}

// Payload returns the card's wire-schema tree.
func (c *Card) Payload() Block {
	return c.payload
}

// Language returns the language tag the card was built with.
func (c *Card) Language() string {
	return c.language
}

// JSON serializes the card payload.
func (c *Card) JSON() ([]byte, error) {
	return json.Marshal(c.payload)
}

// JSONIndent serializes the card payload with two-space indentation.
func (c *Card) JSONIndent() ([]byte, error) {
	return json.MarshalIndent(c.payload, "", "  ")
}
