package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"aidetector/internal/services/api/docs"
)

// SpecMutator adjusts the parsed document before it is served
type SpecMutator func(spec map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

var readDoc = func() string { return docs.SwaggerInfo.ReadDoc() }

// Register adds a mutator; modules call it while mounting
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	mutators = append(mutators, m)
	mu.Unlock()
}

func serveDocJSON(w http.ResponseWriter, _ *http.Request) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(readDoc()), &spec); err != nil {
		http.Error(w, "spec parse error", http.StatusInternalServerError)
		return
	}
	addDefaultResponses(spec)

	mu.RLock()
	for _, m := range mutators {
		m(spec)
	}
	mu.RUnlock()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(spec)
}

// addDefaultResponses gives every operation a 500 that points at the
// route group's error schema unless it declares one itself
func addDefaultResponses(spec map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for path, node := range paths {
		ops, ok := node.(map[string]any)
		if !ok {
			continue
		}
		schema := "#/components/schemas/Envelope"
		if path == "/api/detect-ai" {
			schema = "#/components/schemas/DetectError"
		}
		for _, opAny := range ops {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			if _, ok := resps["500"]; !ok {
				resps["500"] = map[string]any{
					"description": "Internal Server Error",
					"content": map[string]any{
						"application/json": map[string]any{"schema": map[string]any{"$ref": schema}},
					},
				}
			}
		}
	}
}
