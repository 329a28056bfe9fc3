package observers

import (
	"context"
	"strings"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/replypilot/server/pkg/logger"
)

// newModelHandler builds a typed ModelCallbackHandler tracing model calls.
func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			evt := logx.Debug().Str("component", info.Type).Str("node", info.Name)
			if input != nil && len(input.Messages) > 0 {
				last := input.Messages[len(input.Messages)-1]
				if last != nil {
					evt = evt.Int("prompt_chars", len(last.Content))
				}
			}
			evt.Msg("model call start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			evt := logx.Debug().Str("component", info.Type).Str("node", info.Name)
			if output != nil && output.Message != nil {
				evt = evt.Int("response_chars", len(strings.TrimSpace(output.Message.Content)))
				if output.Message.ResponseMeta != nil && output.Message.ResponseMeta.Usage != nil {
					evt = evt.
						Int("prompt_tokens", output.Message.ResponseMeta.Usage.PromptTokens).
						Int("completion_tokens", output.Message.ResponseMeta.Usage.CompletionTokens)
				}
			}
			evt.Msg("model call end")
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("component", info.Type).Str("node", info.Name).Msg("model call error")
			return ctx
		},
	}
}
