package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/replypilot/server/internal/assistant/extract"
	"github.com/replypilot/server/internal/assistant/graph"
	"github.com/replypilot/server/internal/assistant/llm"
	"github.com/replypilot/server/internal/assistant/model"
	"github.com/replypilot/server/internal/assistant/repo"
	"github.com/replypilot/server/internal/assistant/storage"
	"github.com/replypilot/server/internal/core"
	errx "github.com/replypilot/server/internal/core/error"
	"github.com/replypilot/server/internal/server"
	"github.com/replypilot/server/internal/ui"
	logx "github.com/replypilot/server/pkg/logger"
	pkgredis "github.com/replypilot/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure. Redis is optional for the shell: without it, remote
	// saves are disabled and sessions live in memory.
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Assistant configs
	Classifier   model.ClassifierModelConfig
	Drafter      model.DrafterModelConfig
	Conversation model.ConversationConfig
	Storage      model.StorageConfig

	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
}

func loadConfig() (*AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})
	return &cfg, nil
}

// buildRunner wires the ports into a compiled graph. The tone prompter differs
// per front-end, so it is passed in.
func buildRunner(ctx context.Context, cfg *AppConfig, tone model.TonePrompter) (graph.Runner, model.SessionRepository, error) {
	classifier, drafter, err := llm.NewGenerators(ctx, llm.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Classifier: cfg.Classifier,
		Drafter:    cfg.Drafter,
	})
	if err != nil {
		return nil, nil, err
	}

	var (
		remote   model.Store
		sessions model.SessionRepository = repo.NewMemorySessionRepository()
	)
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New()
		if err != nil {
			return nil, nil, fmt.Errorf("initialise redis client: %w", err)
		}
		remote = storage.NewRedisStore(rdb)

		ttl, err := time.ParseDuration(cfg.Conversation.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid CONVERSATION_TTL %q: %w", cfg.Conversation.TTL, err)
		}
		sessions = repo.NewRedisSessionRepository(rdb, ttl)
	}

	runner, err := graph.Build(ctx, &graph.Config{
		Classifier: classifier,
		Drafter:    drafter,
		Extractor:  extract.NewPDFExtractor(),
		Store:      storage.NewTargetStore(storage.NewLocalStore(cfg.Storage.LocalDir), remote),
		Tone:       tone,
		Storage:    cfg.Storage,
	})
	if err != nil {
		return nil, nil, err
	}
	return runner, sessions, nil
}

func runShell(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	runner, _, err := buildRunner(ctx, cfg, &ui.ConsoleTonePrompter{In: in, Out: os.Stdout})
	if err != nil {
		return err
	}

	state := model.NewConversationState(uuid.NewString())
	fmt.Println("Welcome to the email reply assistant. Type 'exit' to quit.")

	for {
		fmt.Print("\n> ")
		line, err := in.ReadString('\n')
		if err == io.EOF && strings.TrimSpace(line) == "" {
			fmt.Println("Goodbye!")
			return nil
		}
		if err != nil && err != io.EOF {
			return fmt.Errorf("read input: %w", err)
		}

		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return nil
		}

		turnCtx := ui.WithSink(ctx, ui.WriterSink{W: os.Stdout})
		if _, err := runner.RunTurn(turnCtx, state, line); err != nil {
			if errx.IsFatal(err) {
				return err
			}
			logx.Error().Err(err).Msg("turn failed")
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// No interactive console behind an HTTP endpoint: tone falls back to the
	// default unless the user asks for one in conversation.
	runner, sessions, err := buildRunner(ctx, cfg, ui.StaticTonePrompter{})
	if err != nil {
		return err
	}

	srv := server.New(runner, sessions)
	logx.Info().Str("addr", cfg.HTTPAddr).Msg("assistant service listening")
	return http.ListenAndServe(cfg.HTTPAddr, srv.Routes())
}

func main() {
	root := &cobra.Command{
		Use:           "replypilot",
		Short:         "Conversational email reply assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "shell",
			Short: "Start the interactive assistant shell",
			RunE:  runShell,
		},
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP assistant service",
			RunE:  runServe,
		},
	)

	if err := root.Execute(); err != nil {
		logx.Fatal().Err(err).Msg("command failed")
	}
}
