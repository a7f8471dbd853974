// internal/llm/bedrock.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"matchtech-assistant/internal/common/logger"
)

var (
	ErrLLMTimeout      = errors.New("LLM_TIMEOUT")
	ErrLLMInvokeFailed = errors.New("LLM_INVOKE_FAILED")
)

// InvokeAPI is the subset of the Bedrock runtime client used by Client.
type InvokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Client invokes a hosted model through AWS Bedrock.
type Client struct {
	config *Config
	api    InvokeAPI
	logger logger.Logger
}

func NewClient(ctx context.Context, cfg *Config, log logger.Logger) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewClientWithAPI(cfg, bedrockruntime.NewFromConfig(awsCfg), log), nil
}

// NewClientWithAPI builds a Client over an existing Bedrock API, used by tests.
func NewClientWithAPI(cfg *Config, api InvokeAPI, log logger.Logger) *Client {
	return &Client{
		config: cfg,
		api:    api,
		logger: log.With(map[string]interface{}{
			"component": "llm",
			"modelId":   cfg.ModelID,
		}),
	}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	body, _ := json.Marshal(map[string]interface{}{
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens":  c.config.MaxTokens,
		"temperature": c.config.Temperature,
		"top_p":       c.config.TopP,
	})

	out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.config.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrLLMTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrLLMInvokeFailed, err)
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(out.Body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode error: %v", ErrLLMInvokeFailed, err)
	}

	var text string
	switch {
	case len(parsed.Choices) > 0 && parsed.Choices[0].Message.Content != "":
		text = parsed.Choices[0].Message.Content
	case parsed.Text != "":
		text = parsed.Text
	default:
		text = "No pude interpretar la respuesta del modelo."
	}

	c.logger.Info("model invocation completed", map[string]interface{}{
		"responseLength": len(text),
	})

	return strings.TrimSpace(text), nil
}
