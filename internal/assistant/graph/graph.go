package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/replypilot/server/internal/assistant/graph/observers"
	"github.com/replypilot/server/internal/assistant/graph/steps"
	"github.com/replypilot/server/internal/assistant/model"
	logx "github.com/replypilot/server/pkg/logger"
)

// Runner executes exactly one conversation turn against the supplied state.
// The state is mutated in place and returned; the runner holds nothing between
// invocations, so callers own persistence across turns.
type Runner interface {
	RunTurn(ctx context.Context, state *model.ConversationState, userInput string) (*model.ConversationState, error)
}

// Config holds the injected ports and settings the step functions close over.
// Ports are explicit dependencies: there is no rebindable global service state.
type Config struct {
	// Classifier handles the routing step's intent classification.
	Classifier model.Generator
	// Drafter handles extraction, drafting and refinement.
	Drafter model.Generator

	Extractor model.Extractor
	Store     model.Store
	Tone      model.TonePrompter

	Storage model.StorageConfig
}

// GraphBuilder handles the construction of the conversation graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[*model.ConversationState, *model.ConversationState]
}

type turnRunner struct {
	runnable compose.Runnable[*model.ConversationState, *model.ConversationState]
}

func (r *turnRunner) RunTurn(ctx context.Context, state *model.ConversationState, userInput string) (*model.ConversationState, error) {
	if state == nil {
		return nil, fmt.Errorf("conversation state is nil")
	}

	// Transient turn fields: the input is this turn's, the intent is set fresh
	// by the router.
	state.UserInput = userInput
	state.Intent = ""

	out, err := r.runnable.Invoke(ctx, state, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Build validates the config, wires the step functions into the conversation
// graph, and returns a Runner for it. The graph is compiled once and is safe to
// share across sessions; each invocation threads its own state.
func Build(ctx context.Context, config *Config) (Runner, error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Classifier == nil || config.Drafter == nil {
		return nil, fmt.Errorf("generator ports are not properly initialized")
	}
	if config.Extractor == nil {
		return nil, fmt.Errorf("extractor port is nil")
	}
	if config.Store == nil {
		return nil, fmt.Errorf("store port is nil")
	}
	if config.Tone == nil {
		return nil, fmt.Errorf("tone prompter is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph:  compose.NewGraph[*model.ConversationState, *model.ConversationState](),
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Conversation graph built successfully")
	return &turnRunner{runnable: runnable}, nil
}

// addNodes adds all step nodes to the graph.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(steps.NodeRouter, steps.NewRouterStep(b.config.Classifier))
	b.graph.AddLambdaNode(steps.NodeParseInput, steps.NewParseInputStep(b.config.Extractor))
	b.graph.AddLambdaNode(steps.NodeExtractAndSummarize, steps.NewExtractAndSummarizeStep(b.config.Drafter))
	b.graph.AddLambdaNode(steps.NodeAskForTone, steps.NewAskForToneStep(b.config.Tone))
	b.graph.AddLambdaNode(steps.NodeGenerateInitialDraft, steps.NewGenerateInitialDraftStep(b.config.Drafter))
	b.graph.AddLambdaNode(steps.NodeRefineDraft, steps.NewRefineDraftStep(b.config.Drafter))
	b.graph.AddLambdaNode(steps.NodeShowInfo, steps.NewShowInfoStep())
	b.graph.AddLambdaNode(steps.NodeSaveDraft, steps.NewSaveDraftStep(b.config.Store, b.config.Storage))
	b.graph.AddLambdaNode(steps.NodeResetSession, steps.NewResetSessionStep())
	b.graph.AddLambdaNode(steps.NodeHandleUnclear, steps.NewHandleUnclearStep())
	b.graph.AddLambdaNode(steps.NodeHandleIdleChat, steps.NewHandleIdleChatStep())
	b.graph.AddLambdaNode(steps.NodeHandleError, steps.NewHandleErrorStep())
}

// addEdges creates the unconditional connections: the entry edge and the edges
// from the terminal-for-the-turn nodes to END.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, steps.NodeRouter},
		{steps.NodeShowInfo, compose.END},
		{steps.NodeSaveDraft, compose.END},
		{steps.NodeResetSession, compose.END},
		{steps.NodeHandleUnclear, compose.END},
		{steps.NodeHandleIdleChat, compose.END},
		{steps.NodeHandleError, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates the conditional routing: the intent-keyed dispatch from
// the router, then an error check after every step of the draft pipeline.
func (b *GraphBuilder) addBranches() error {
	intentBranch := compose.NewGraphBranch(
		steps.NewIntentCondition(),
		map[string]bool{
			steps.NodeParseInput:     true,
			steps.NodeRefineDraft:    true,
			steps.NodeShowInfo:       true,
			steps.NodeSaveDraft:      true,
			steps.NodeResetSession:   true,
			steps.NodeHandleUnclear:  true,
			steps.NodeHandleIdleChat: true,
			steps.NodeHandleError:    true,
		},
	)
	if err := b.graph.AddBranch(steps.NodeRouter, intentBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding intent dispatch branch")
		return fmt.Errorf("error adding intent dispatch branch: %w", err)
	}

	// Linear draft pipeline with short-circuit to the error handler.
	pipeline := [][2]string{
		{steps.NodeParseInput, steps.NodeExtractAndSummarize},
		{steps.NodeExtractAndSummarize, steps.NodeAskForTone},
		{steps.NodeAskForTone, steps.NodeGenerateInitialDraft},
		{steps.NodeGenerateInitialDraft, compose.END},
		{steps.NodeRefineDraft, compose.END},
	}
	for _, p := range pipeline {
		node, next := p[0], p[1]
		branch := compose.NewGraphBranch(
			steps.NewErrorCheckCondition(next),
			map[string]bool{
				next:                  true,
				steps.NodeHandleError: true,
			},
		)
		if err := b.graph.AddBranch(node, branch); err != nil {
			logx.Error().Err(err).Str("node", node).Msg("Error adding error check branch")
			return fmt.Errorf("error adding error check branch after %s: %w", node, err)
		}
	}

	return nil
}

// compile finalizes and compiles the graph. The graph is acyclic and a turn
// visits at most six nodes, so a small step cap guards against wiring mistakes.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[*model.ConversationState, *model.ConversationState], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(16))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
