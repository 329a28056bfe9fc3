// Package llm implements the text-generation port on Gemini via the Eino chat
// model component.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/replypilot/server/internal/assistant/model"
	errx "github.com/replypilot/server/internal/core/error"
	logx "github.com/replypilot/server/pkg/logger"
)

// Config holds what is needed to construct the chat models.
type Config struct {
	APIKey     string
	BaseURL    string
	Classifier model.ClassifierModelConfig
	Drafter    model.DrafterModelConfig
}

// Generator adapts one Gemini chat model to the Generator port. Failures are
// wrapped as generation errors; no retries happen here.
type Generator struct {
	cm        *gemini.ChatModel
	modelName string
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.cm.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		logx.Error().Err(err).Str("model", g.modelName).Msg("generation call failed")
		return "", errx.WrapGeneration(err)
	}
	if out == nil {
		return "", errx.WrapGeneration(fmt.Errorf("model %s returned no message", g.modelName))
	}
	return strings.TrimSpace(out.Content), nil
}

var _ model.Generator = (*Generator)(nil)

// NewGenerators creates the classifier and drafter generators on one shared
// Gemini client, mirroring the two-model split: a small fast model for routing,
// a larger one for writing.
func NewGenerators(ctx context.Context, config Config) (classifier, drafter *Generator, err error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	classifierModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Classifier.Model,
		Temperature: &config.Classifier.Temperature,
		MaxTokens:   &config.Classifier.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating classifier model")
		return nil, nil, fmt.Errorf("error creating classifier model: %w", err)
	}

	drafterModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Drafter.Model,
		Temperature: &config.Drafter.Temperature,
		MaxTokens:   &config.Drafter.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating drafter model")
		return nil, nil, fmt.Errorf("error creating drafter model: %w", err)
	}

	return &Generator{cm: classifierModel, modelName: config.Classifier.Model},
		&Generator{cm: drafterModel, modelName: config.Drafter.Model},
		nil
}
