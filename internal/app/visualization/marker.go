package visualization

import (
	"encoding/json"
	"strings"
)

// Marker introduces an inline visualization payload in a model reply
const Marker = "VISUALIZATION_DATA:"

// ParseMarker extracts the first JSON object following Marker. rest is the
// reply text before the marker, trimmed. ok is false when there is no marker
// or the object does not decode.
func ParseMarker(text string) (payload map[string]any, rest string, ok bool) {
	idx := strings.Index(text, Marker)
	if idx < 0 {
		return nil, text, false
	}

	body := text[idx+len(Marker):]
	body = strings.ReplaceAll(body, "```json", "")
	body = strings.ReplaceAll(body, "```", "")

	brace := strings.Index(body, "{")
	if brace < 0 {
		return nil, text, false
	}

	if err := json.NewDecoder(strings.NewReader(body[brace:])).Decode(&payload); err != nil {
		return nil, text, false
	}

	return payload, strings.TrimSpace(text[:idx]), true
}

// PayloadType reads the "type" field of a parsed payload
func PayloadType(payload map[string]any) string {
	t, _ := payload["type"].(string)
	return t
}
