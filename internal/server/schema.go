package server

import (
	"encoding/json"
	"net/http"

	"github.com/invopop/jsonschema"

	"setu/internal/domain/commerce"
	"setu/internal/errs"
)

// broadcastSchemaJSON reflects the broadcast message format once at
// startup so integrators can inspect what the simulated network carries.
func broadcastSchemaJSON() ([]byte, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&commerce.BroadcastMessage{})

	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, errs.Wrap(err, "encode broadcast schema")
	}
	return encoded, nil
}

func (s *Server) handleBroadcastSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.schema)
}
