package suggestion

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/frahmantamala/access-console/internal/catalog"
)

// ParseResponse extracts the suggested ids from the model's answer and keeps
// only those present in systems, in the order given. A malformed answer
// yields no suggestions rather than an error.
func ParseResponse(text string, systems []catalog.System, logger *slog.Logger) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("model returned an empty response")
		return []string{}
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &body); err != nil {
		logger.Warn("could not parse model response", "error", err)
		return []string{}
	}

	var items []interface{}
	if err := json.Unmarshal(body[responseKey], &items); err != nil || items == nil {
		logger.Warn("model response has no suggestion list", "key", responseKey)
		return []string{}
	}

	known := make(map[string]struct{}, len(systems))
	for _, s := range systems {
		known[s.ID] = struct{}{}
	}

	ids := make([]string, 0, len(items))
	dropped := 0
	for _, item := range items {
		id, ok := item.(string)
		if !ok {
			dropped++
			continue
		}
		if _, ok := known[id]; !ok {
			dropped++
			continue
		}
		ids = append(ids, id)
	}
	if dropped > 0 {
		logger.Debug("dropped suggestions outside the catalog", "dropped", dropped)
	}
	return ids
}
