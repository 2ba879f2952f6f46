// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"fmt"
	"strings"

	"github.com/talhadar90/number-guessing-game-show/game"
)

const contestantInstructions = `You are a strategic player in a number guessing game show.

Your role is to:
1. Use a binary search strategy
2. Track the valid number range precisely
3. Never repeat your own or another player's guess
4. Make the best guess the feedback so far allows

When making a guess:
- Stay inside the valid range
- Avoid numbers already guessed by any player
- Factor in your remaining tries
- Give short strategic reasoning for your choice`

const hostInstructions = `You are the charismatic host of an exciting number guessing game show!

Your style should:
1. Build suspense around each guess
2. Create excitement when players get close
3. Use game show catchphrases and dramatic pauses
4. Make each guess feel consequential
5. Emphasize remaining tries
6. Reference the valid number range

Examples:
- "With only 2 tries left, Player 1 steps up boldly to the podium!"
- "The number must be between 45 and 60! Can they crack the code?"

Keep every narration to at most three sentences of plain text.`

func contestantPrompt(req game.GuessRequest, suggestion int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game state for %s (round %d):\n", req.Player, req.Round)
	fmt.Fprintf(&b, "- Secret is between %d and %d\n", req.Bounds.Lower, req.Bounds.Upper)
	fmt.Fprintf(&b, "- Valid range: %s\n", req.Valid)
	fmt.Fprintf(&b, "- Your previous guesses: %s\n", describeResults(req.History))
	fmt.Fprintf(&b, "- Other players' guesses: %s\n", describeResults(req.Others))
	fmt.Fprintf(&b, "- Tries remaining: %d\n", req.Remaining)
	fmt.Fprintf(&b, "\nA binary search over the numbers nobody has tried points at %d.\n", suggestion)
	b.WriteString("Decide your next guess and explain why it is optimal.")
	return b.String()
}

func describeResults(rs []game.Result) string {
	if len(rs) == 0 {
		return "none"
	}
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("%d (%s)", r.Guess, r.Classification)
	}
	return strings.Join(parts, ", ")
}

func turnPrompt(t game.Turn, history []int) string {
	return fmt.Sprintf("Narrate this dramatic moment:\n"+
		"- %s guesses %d\n"+
		"- Feedback: %s\n"+
		"- Valid range: %s\n"+
		"- Tries remaining: %d\n"+
		"- Turn number: %d\n"+
		"- Previous guesses: %v",
		t.Player, t.Result.Guess, feedback(t), t.Valid, t.Remaining, t.Seq, history)
}

func victoryPrompt(t game.Turn, history []int) string {
	return fmt.Sprintf("Create an epic victory narration for correctly guessing the secret number:\n"+
		"- Champion: %s\n"+
		"- Winning number: %d\n"+
		"- Journey: %v\n"+
		"- Tries remaining: %d\n"+
		"Make it spectacular and celebratory!",
		t.Player, t.Result.Guess, history, t.Remaining)
}

func lastTryPrompt(t game.Turn) string {
	return fmt.Sprintf("Create a dramatic narration for a player who just used their final try:\n"+
		"- Player: %s\n"+
		"- Last guess: %d\n"+
		"- Feedback: %s\n"+
		"- Valid range is now: %s",
		t.Player, t.Result.Guess, feedback(t), t.Valid)
}

// feedback is the referee's verdict in words.
func feedback(t game.Turn) string {
	switch t.Result.Classification {
	case game.Correct:
		return fmt.Sprintf("Correct! The secret number was %d", t.Result.Guess)
	case game.TooLow, game.TooHigh:
		return fmt.Sprintf("The secret number is %s than %d", t.Result.Classification.Hint(), t.Result.Guess)
	default:
		return "no valid guess"
	}
}

// SuspenseLine is the scripted line the host falls back to when no model
// narration is available.
func SuspenseLine(t game.Turn, guesses int) string {
	switch {
	case t.Remaining == 1:
		return "This is it! The final try! Can they pull off a miracle?"
	case t.Remaining == 0:
		return fmt.Sprintf("%s is out of tries! The podium goes quiet.", t.Player)
	case guesses > 3:
		return fmt.Sprintf("The tension is electric as %s narrows down the possibilities!", t.Player)
	default:
		return fmt.Sprintf("With %d tries remaining, who will crack the code first?", t.Remaining)
	}
}
