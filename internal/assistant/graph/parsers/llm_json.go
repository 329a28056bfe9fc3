// Package parsers decodes the structured JSON the language models are asked to
// produce. Model output is hostile input: it may be fenced in markdown, padded
// with prose, truncated, or not JSON at all, so everything here guards sizes and
// fails with errors the steps can translate into turn errors.
package parsers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/replypilot/server/internal/assistant/model"
	logx "github.com/replypilot/server/pkg/logger"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 64 * 1024 // 64KB of model output is already unreasonable here
	maxErrSnippet = 120
)

// safeSnippet truncates a string for inclusion in error logs.
func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxErrSnippet {
		return s[:maxErrSnippet] + "..."
	}
	return s
}

// extractJSONObject pulls the outermost JSON object out of model output,
// tolerating markdown code fences and surrounding prose.
func extractJSONObject(content string) (string, error) {
	if len(content) > maxContentLen {
		logx.Warn().
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("model output truncated due to size limit")
		content = content[:maxContentLen]
	}
	content = strings.TrimSpace(content)

	// strip a ```json ... ``` fence if the whole payload is fenced
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx >= 0 {
			content = content[:idx]
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in model output: %q", safeSnippet(content))
	}
	return content[start : end+1], nil
}

// ParseClassification decodes the router's {"intent": ..., "save_target": ...}
// output. The intent string is preserved as-is; values outside the known enum
// are the dispatcher's problem, not the parser's. The original assistant called
// remote storage "s3", so that spelling is accepted as an alias.
func ParseClassification(content string) (*model.Classification, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Intent     string `json:"intent"`
		SaveTarget string `json:"save_target"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}
	if strings.TrimSpace(payload.Intent) == "" {
		return nil, fmt.Errorf("classification missing intent field")
	}

	out := &model.Classification{
		Intent: model.Intent(strings.TrimSpace(strings.ToLower(payload.Intent))),
	}
	switch strings.TrimSpace(strings.ToLower(payload.SaveTarget)) {
	case "":
		// no save cue in this utterance
	case "s3", "remote", "cloud":
		out.SaveTarget = model.SaveTargetRemote
	case "local":
		out.SaveTarget = model.SaveTargetLocal
	default:
		logx.Warn().Str("save_target", payload.SaveTarget).Msg("ignoring unknown save target from classifier")
	}
	return out, nil
}

// ParseExtraction decodes the extraction step's JSON into key info and a
// summary. All fields are optional; missing ones stay empty.
func ParseExtraction(content string) (*model.KeyInfo, string, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, "", err
	}

	var payload struct {
		SenderName      string `json:"sender_name"`
		SenderContact   string `json:"sender_contact"`
		ReceiverName    string `json:"receiver_name"`
		ReceiverContact string `json:"receiver_contact"`
		Subject         string `json:"subject"`
		Summary         string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, "", fmt.Errorf("decode extraction: %w", err)
	}

	info := &model.KeyInfo{
		SenderName:      strings.TrimSpace(payload.SenderName),
		SenderContact:   strings.TrimSpace(payload.SenderContact),
		ReceiverName:    strings.TrimSpace(payload.ReceiverName),
		ReceiverContact: strings.TrimSpace(payload.ReceiverContact),
		Subject:         strings.TrimSpace(payload.Subject),
	}
	return info, strings.TrimSpace(payload.Summary), nil
}
