package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/replypilot/server/internal/assistant/model"
)

// ConsoleTonePrompter shows the extracted info and reads the desired tone from
// an interactive console. EOF or a read failure counts as the user cancelling.
type ConsoleTonePrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

func (p *ConsoleTonePrompter) AskTone(ctx context.Context, info *model.KeyInfo, summary string) (string, error) {
	if info != nil {
		if info.SenderName != "" {
			fmt.Fprintf(p.Out, "From: %s\n", info.SenderName)
		}
		if info.Subject != "" {
			fmt.Fprintf(p.Out, "Subject: %s\n", info.Subject)
		}
	}
	if summary != "" {
		fmt.Fprintf(p.Out, "Summary: %s\n", summary)
	}
	fmt.Fprintf(p.Out, "Desired tone for the reply [%s]: ", model.DefaultTone)

	line, err := p.In.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading tone: %w", model.ErrToneCancelled)
	}
	return strings.TrimSpace(line), nil
}

var _ model.TonePrompter = (*ConsoleTonePrompter)(nil)

// StaticTonePrompter answers every tone prompt with a fixed value. The HTTP
// front-end uses it with an empty value so drafts fall back to the default tone
// instead of blocking on interactive input.
type StaticTonePrompter struct {
	Tone string
}

func (p StaticTonePrompter) AskTone(ctx context.Context, info *model.KeyInfo, summary string) (string, error) {
	return p.Tone, nil
}

var _ model.TonePrompter = StaticTonePrompter{}
