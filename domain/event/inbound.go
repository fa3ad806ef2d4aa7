package event

import (
	json "github.com/goccy/go-json"
)

// Inbound is a client frame. Raw keeps the original payload so unrecognized
// types can be relayed verbatim.
type Inbound struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Raw     []byte `json:"-"`
}

// DecodeInbound parses a client frame. A payload that is not a JSON object
// degrades to a plain message carrying the raw text; this is not an error.
func DecodeInbound(raw []byte) Inbound {
	var in Inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		return Inbound{Type: string(TypeMessage), Content: string(raw), Raw: raw}
	}
	in.Raw = raw
	return in
}
