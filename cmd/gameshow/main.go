// Copyright (c) Microsoft. All rights reserved.

// Command gameshow runs a number guessing game show between AI contestants.
//
// Settings come from the environment or a .env file. Usage with Anthropic:
//
//	export ANTHROPIC_API_KEY=sk-ant-...
//	export ANTHROPIC_MODEL_NAME=claude-3-5-haiku-latest
//	go run ./cmd/gameshow
//
// OPENAI_API_KEY/OPENAI_MODEL or AZURE_FOUNDRY_ENDPOINT/AZURE_FOUNDRY_MODEL
// select the other providers. See package config for the game settings.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/talhadar90/number-guessing-game-show/config"
	"github.com/talhadar90/number-guessing-game-show/game"
	"github.com/talhadar90/number-guessing-game-show/llm"
	"github.com/talhadar90/number-guessing-game-show/show"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gameshow: %v\n", err)
		return 1
	}

	logger := newLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(logger)

	client, err := newChatClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gameshow: %v\n", err)
		return 1
	}

	usage := llm.NewUsageMeter()
	opts := []show.Option{
		show.WithLogger(logger),
		show.WithAgentMiddleware(llm.LoggingMiddleware(logger), usage.Middleware()),
	}
	// Pacing waits outside the per-call timeout.
	if limiter := llm.NewLimiter(cfg.RequestsPerSecond); limiter != nil {
		opts = append(opts, show.WithChatMiddleware(llm.RateLimitMiddleware(limiter)))
	}
	opts = append(opts, show.WithChatMiddleware(llm.TimeoutMiddleware(cfg.RequestTimeout)))

	roster := make([]game.Contestant, len(cfg.Players))
	for i, name := range cfg.Players {
		roster[i] = game.Contestant{Name: name, Guesser: show.NewContestant(client, name, opts...)}
	}

	g, err := game.New(roster,
		game.WithBounds(game.Range{Lower: cfg.Lower, Upper: cfg.Upper}),
		game.WithAttempts(cfg.Attempts),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gameshow: %v\n", err)
		return 1
	}

	var narration llm.ChatClient
	if cfg.Narrator == config.NarratorAI {
		narration = client
	}
	host := show.NewHost(os.Stdout, narration, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, err := game.NewController(g, game.WithNarrator(host), game.WithLogger(logger)).Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "gameshow: interrupted")
		return 1
	case err != nil:
		fmt.Fprintf(os.Stderr, "gameshow: %v\n", err)
		return 1
	}

	logger.Info("game over",
		"status", out.Status,
		"winner", out.Winner,
		"rounds", out.Rounds,
		"turns", out.Turns,
		"total_tokens", usage.Total().TotalTokens,
		"usage", usage,
	)
	return 0
}

// newLogger logs at info, or at debug when debug is set.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
