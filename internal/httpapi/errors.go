package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/pkg/types"
)

// writeJSONError writes the error envelope used across the invocation
// contract: a body with a single stringified error and nothing else.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: msg})
}
