package titan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/yiqiao-yin/aws-deploy-bedrock-on-lambda/pkg/types"
)

const (
	// DefaultModelID is the Titan text model invoked by this service.
	DefaultModelID = "amazon.titan-tg1-large"

	// DefaultRegion is used when no region is configured in the environment.
	DefaultRegion = "us-east-1"

	contentTypeJSON = "application/json"
)

// Invoker abstracts the Bedrock Runtime operation used by the Client.
// *bedrockruntime.Client satisfies this interface.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Request is the Titan text-generation payload.
type Request struct {
	InputText            string                 `json:"inputText"`
	TextGenerationConfig types.GenerationConfig `json:"textGenerationConfig"`
}

// Client wraps a Bedrock Runtime client for a single fixed model.
type Client struct {
	api     Invoker
	modelID string
}

// New builds a Client over an existing Invoker. An empty modelID selects
// DefaultModelID.
func New(api Invoker, modelID string) *Client {
	if modelID == "" {
		modelID = DefaultModelID
	}
	return &Client{api: api, modelID: modelID}
}

// NewFromConfig resolves AWS credentials and region from the default chain
// and returns a Client ready for use. region overrides the chain; if both are
// empty, DefaultRegion applies.
func NewFromConfig(ctx context.Context, region, modelID string) (*Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	} else {
		opts = append(opts, awsconfig.WithDefaultRegion(DefaultRegion))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(bedrockruntime.NewFromConfig(cfg), modelID), nil
}

// ModelID returns the fixed model identifier this client invokes.
func (c *Client) ModelID() string { return c.modelID }

// Generate issues one blocking InvokeModel call and returns the provider's
// response body, decoded only far enough to guarantee it is valid JSON.
// Provider errors are returned unchanged; no retry, no classification.
func (c *Client) Generate(ctx context.Context, prompt string, cfg types.GenerationConfig) (json.RawMessage, error) {
	payload, err := json.Marshal(Request{InputText: prompt, TextGenerationConfig: cfg})
	if err != nil {
		return nil, fmt.Errorf("marshal titan request: %w", err)
	}

	start := time.Now()
	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
		Body:        payload,
	})
	observeInvocation(c.modelID, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	var probe any
	if err := json.Unmarshal(out.Body, &probe); err != nil {
		return nil, fmt.Errorf("decode model response: %w", err)
	}
	return json.RawMessage(out.Body), nil
}
