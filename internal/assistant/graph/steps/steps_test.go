package steps

import (
	"context"
	"fmt"

	"github.com/replypilot/server/internal/assistant/model"
)

// scriptedGenerator returns queued outputs in order, recording every prompt it
// received. A non-nil err fails every call.
type scriptedGenerator struct {
	outputs []string
	err     error
	prompts []string
}

func (g *scriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	if len(g.outputs) == 0 {
		return "", fmt.Errorf("scripted generator exhausted")
	}
	out := g.outputs[0]
	g.outputs = g.outputs[1:]
	return out, nil
}

type fakeExtractor struct {
	content string
	err     error
	paths   []string
}

func (e *fakeExtractor) ExtractPlainText(ctx context.Context, path string) (string, error) {
	e.paths = append(e.paths, path)
	if e.err != nil {
		return "", e.err
	}
	return e.content, nil
}

type storeCall struct {
	content string
	locator string
	target  model.SaveTarget
	bucket  string
}

type fakeStore struct {
	err   error
	calls []storeCall
}

func (s *fakeStore) Store(ctx context.Context, content, locator string, target model.SaveTarget, bucket string) error {
	s.calls = append(s.calls, storeCall{content: content, locator: locator, target: target, bucket: bucket})
	return s.err
}

type fakeTonePrompter struct {
	tone string
	err  error
}

func (p fakeTonePrompter) AskTone(ctx context.Context, info *model.KeyInfo, summary string) (string, error) {
	return p.tone, p.err
}
