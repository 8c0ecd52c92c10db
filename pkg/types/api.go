package types

import "encoding/json"

// Event is the incoming invocation event. API Gateway proxies the request
// body as a JSON string; direct invocations may pass an object or omit the
// field entirely, so Body stays raw until the handler resolves it.
type Event struct {
	Body json.RawMessage `json:"body,omitempty"`
}

// Response is the invocation result envelope returned to the caller.
type Response struct {
	// HTTP-style status code: 200 on success, 500 on provider failure.
	// example: 200
	StatusCode int `json:"statusCode" example:"200"`
	// Serialized JSON body (SuccessEnvelope or ErrorEnvelope).
	Body string `json:"body"`
}

// InvocationRequest is the caller-supplied generation request. Every field is
// optional; nil means "use the fixed default". Supplied values are passed to
// the provider as-is, without range validation.
type InvocationRequest struct {
	// Prompt text to generate a completion for.
	// example: Write a haiku about the ocean.
	Prompt *string `json:"prompt,omitempty" example:"Write a haiku about the ocean."`
	// Maximum number of tokens to generate.
	// example: 200
	MaxTokenCount *int `json:"maxTokenCount,omitempty" example:"200"`
	// Sampling temperature (higher = more random).
	// example: 0.7
	Temperature *float64 `json:"temperature,omitempty" example:"0.7"`
	// Nucleus sampling probability.
	// example: 0.9
	TopP *float64 `json:"topP,omitempty" example:"0.9"`
}

// GenerationConfig is the resolved parameter triple sent to the provider.
// All fields are always present: caller values merged with defaults.
type GenerationConfig struct {
	MaxTokenCount int     `json:"maxTokenCount" example:"200"`
	Temperature   float64 `json:"temperature" example:"0.7"`
	TopP          float64 `json:"topP" example:"0.9"`
}

// SuccessEnvelope is the 200 response body.
type SuccessEnvelope struct {
	// Fixed banner identifying the provider response.
	// example: Amazon Titan Response
	Message string `json:"message" example:"Amazon Titan Response"`
	// The prompt that was sent, echoed back.
	InputPrompt string `json:"input_prompt"`
	// The resolved generation parameters used for the call.
	ParametersUsed GenerationConfig `json:"parameters_used"`
	// The provider's response body, verbatim.
	ModelResponse json.RawMessage `json:"model_response"`
}

// ErrorEnvelope is the 500 response body. It carries the stringified error
// and nothing else.
type ErrorEnvelope struct {
	// example: operation error Bedrock Runtime: InvokeModel, ThrottlingException
	Error string `json:"error"`
}
