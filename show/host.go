// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/talhadar90/number-guessing-game-show/game"
	"github.com/talhadar90/number-guessing-game-show/llm"
)

const rule = "=================================================="

// Host narrates the game to a writer. With a model client it asks for
// game-show narration on every turn; without one, or when a call fails, it
// reads a scripted line instead. It never changes the game.
type Host struct {
	out    io.Writer
	agent  *llm.Agent
	logger *slog.Logger
}

var _ game.Narrator = (*Host)(nil)

// NewHost creates a host writing to out. A nil client gives a plain host
// that only uses scripted lines.
func NewHost(out io.Writer, client llm.ChatClient, opts ...Option) *Host {
	s := newSettings(0.9, 200, opts)
	h := &Host{out: out, logger: s.logger}
	if client != nil {
		h.agent = s.agent(client, "host", hostInstructions)
	}
	return h
}

// Started prints the opening banner.
func (h *Host) Started(ctx context.Context, g *game.Game) {
	names := make([]string, 0, len(g.Players()))
	for _, p := range g.Players() {
		names = append(names, p.Name)
	}
	fmt.Fprintln(h.out, rule)
	fmt.Fprintln(h.out, "🎪 Welcome to the Number Guessing Game Show! 🎪")
	fmt.Fprintf(h.out, "Contestants: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(h.out, "The secret number lies between %d and %d. Each contestant has %d tries.\n",
		g.Bounds().Lower, g.Bounds().Upper, g.Attempts())
	fmt.Fprintln(h.out, rule)
	fmt.Fprintln(h.out)
}

// Played prints one block per turn.
func (h *Host) Played(ctx context.Context, g *game.Game, t game.Turn) {
	fmt.Fprintf(h.out, "Round %d, turn %d: %s's turn!\n", t.Round, t.Seq, t.Player)

	if t.Forfeited {
		fmt.Fprintf(h.out, "%s fumbles the answer and forfeits the turn! (%s)\n", t.Player, t.Reason)
		fmt.Fprintf(h.out, "Tries remaining: %d\n", t.Remaining)
		fmt.Fprintf(h.out, "%s\n\n", rule)
		return
	}

	fmt.Fprintf(h.out, "%s guesses: %d!\n", t.Player, t.Result.Guess)
	if t.OutOfRange {
		fmt.Fprintln(h.out, "(A risky move: that number was already ruled out!)")
	}

	fmt.Fprintln(h.out, "\n=== Game Show Update ===")
	fmt.Fprintln(h.out, h.narrate(ctx, g, t))
	if t.Result.Classification != game.Correct {
		fmt.Fprintf(h.out, "Valid range: %s\n", t.Valid)
	}
	if t.Contradictory {
		fmt.Fprintln(h.out, "(The clues no longer add up, so the range hint is unreliable.)")
	}
	fmt.Fprintf(h.out, "%s\n\n", rule)
}

// Finished prints the closing summary.
func (h *Host) Finished(ctx context.Context, g *game.Game) {
	secret, _ := g.Secret()
	switch g.Status() {
	case game.Won:
		w := g.Winner()
		fmt.Fprintf(h.out, "🎉 Congratulations! %s won the game with %d tries to spare! 🎉\n", w.Name, w.Remaining)
	case game.Exhausted:
		fmt.Fprintf(h.out, "🎭 Game Over! Nobody cracked it. The secret number was %d! 🎭\n", secret)
	}
}

// narrate returns the model's narration of t, or the scripted fallback.
func (h *Host) narrate(ctx context.Context, g *game.Game, t game.Turn) string {
	history := guessesOf(g, t.Player)
	fallback := feedback(t) + ". " + SuspenseLine(t, len(history))
	if t.Result.Classification == game.Correct {
		fallback = feedback(t) + "!"
	}
	if h.agent == nil {
		return fallback
	}

	var prompt string
	switch {
	case t.Result.Classification == game.Correct:
		prompt = victoryPrompt(t, history)
	case t.Remaining == 0:
		prompt = lastTryPrompt(t)
	default:
		prompt = turnPrompt(t, history)
	}

	resp, err := h.agent.Run(ctx, []llm.Message{llm.NewUserMessage(prompt)})
	if err != nil {
		h.logger.WarnContext(ctx, "narration failed, using scripted line", "error", err)
		return fallback
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fallback
	}
	return text
}

func guessesOf(g *game.Game, name string) []int {
	for _, p := range g.Players() {
		if p.Name == name {
			return p.Guesses()
		}
	}
	return nil
}
