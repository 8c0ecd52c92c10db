package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/pkg/types"
)

// Fixed defaults applied when the caller omits a field or the body cannot be
// parsed at all.
const (
	DefaultPrompt        = "What is the meaning of life?"
	DefaultMaxTokenCount = 200
	DefaultTemperature   = 0.7
	DefaultTopP          = 0.9
)

// SuccessMessage is the banner carried by every 200 envelope.
const SuccessMessage = "Amazon Titan Response"

// Generator is the inference backend the handler forwards to.
// *titan.Client satisfies this interface.
type Generator interface {
	Generate(ctx context.Context, prompt string, cfg types.GenerationConfig) (json.RawMessage, error)
}

// Handler implements the invocation contract: parse, default, forward, wrap.
type Handler struct {
	gen Generator
	log zerolog.Logger
}

// New constructs a Handler over the given backend.
func New(gen Generator, log zerolog.Logger) *Handler {
	return &Handler{gen: gen, log: log}
}

// Ready reports whether the handler has a usable inference backend. Used by
// the local server's readiness probe.
func (h *Handler) Ready() bool { return h.gen != nil }

// Resolve merges a caller request with the fixed defaults. Supplied values
// pass through untouched; only absent fields are filled.
func Resolve(req types.InvocationRequest) (string, types.GenerationConfig) {
	prompt := DefaultPrompt
	if req.Prompt != nil {
		prompt = *req.Prompt
	}
	cfg := types.GenerationConfig{
		MaxTokenCount: DefaultMaxTokenCount,
		Temperature:   DefaultTemperature,
		TopP:          DefaultTopP,
	}
	if req.MaxTokenCount != nil {
		cfg.MaxTokenCount = *req.MaxTokenCount
	}
	if req.Temperature != nil {
		cfg.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		cfg.TopP = *req.TopP
	}
	return prompt, cfg
}

// parseBody extracts an InvocationRequest from the raw event body. The body
// may be absent, a JSON object, or a JSON string wrapping an object (API
// Gateway). Any parse failure yields the zero request: malformed input is
// never an error, the entire request falls back to defaults.
func parseBody(body json.RawMessage) types.InvocationRequest {
	var req types.InvocationRequest
	if len(body) == 0 {
		return req
	}
	raw := []byte(body)
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return types.InvocationRequest{}
		}
		raw = []byte(inner)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return types.InvocationRequest{}
	}
	return req
}

// Handle processes one invocation event. The returned error is always nil:
// provider failures are mapped into a 500 envelope, per the contract.
func (h *Handler) Handle(ctx context.Context, ev types.Event) (types.Response, error) {
	if raw, err := json.Marshal(ev); err == nil {
		h.log.Debug().RawJSON("event", raw).Msg("received event")
	}

	prompt, cfg := Resolve(parseBody(ev.Body))
	h.log.Info().
		Int("max_token_count", cfg.MaxTokenCount).
		Float64("temperature", cfg.Temperature).
		Float64("top_p", cfg.TopP).
		Msg("invoke start")

	start := time.Now()
	modelResp, err := h.gen.Generate(ctx, prompt, cfg)
	if err != nil {
		h.log.Info().Int("status", http.StatusInternalServerError).Dur("dur", time.Since(start)).Err(err).Msg("invoke end")
		return errorResponse(err), nil
	}

	body, err := json.Marshal(types.SuccessEnvelope{
		Message:        SuccessMessage,
		InputPrompt:    prompt,
		ParametersUsed: cfg,
		ModelResponse:  modelResp,
	})
	if err != nil {
		h.log.Info().Int("status", http.StatusInternalServerError).Dur("dur", time.Since(start)).Err(err).Msg("invoke end")
		return errorResponse(err), nil
	}

	h.log.Info().Int("status", http.StatusOK).Dur("dur", time.Since(start)).Msg("invoke end")
	return types.Response{StatusCode: http.StatusOK, Body: string(body)}, nil
}

func errorResponse(err error) types.Response {
	// ErrorEnvelope holds a single string field; marshaling cannot fail.
	body, _ := json.Marshal(types.ErrorEnvelope{Error: err.Error()})
	return types.Response{StatusCode: http.StatusInternalServerError, Body: string(body)}
}
