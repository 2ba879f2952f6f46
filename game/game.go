// Copyright (c) Microsoft. All rights reserved.

package game

import (
	"fmt"
	"math/rand/v2"
)

// Status is the state of a [Game].
type Status int

const (
	NotStarted Status = iota
	InProgress
	Won
	Exhausted
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case InProgress:
		return "in-progress"
	case Won:
		return "won"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further turns can be played.
func (s Status) Terminal() bool { return s == Won || s == Exhausted }

// Turn is one entry in the shared game log.
type Turn struct {
	Seq       int
	Round     int
	Player    string
	Result    Result
	Forfeited bool
	// Reason explains a forfeit.
	Reason string
	// OutOfRange marks a guess outside the valid range at the time it was made.
	OutOfRange bool
	// Contradictory marks a turn after which the valid range was inverted.
	Contradictory bool
	Valid         Range
	Remaining     int
}

// Game holds the state of a single game. It is created once per run and
// mutated only by the [Controller].
type Game struct {
	bounds   Range
	attempts int
	rng      *rand.Rand
	fixed    *int

	secret int
	valid  Range
	status Status
	round  int
	seq    int
	winner *Player

	players  []*Player
	guessers []Guesser
	log      []Turn
}

// Option configures a [Game] via [New].
type Option func(*Game)

// WithBounds sets the declared range the secret is drawn from.
func WithBounds(r Range) Option {
	return func(g *Game) { g.bounds = r }
}

// WithAttempts sets the attempt budget of every player.
func WithAttempts(n int) Option {
	return func(g *Game) { g.attempts = n }
}

// WithRand sets the random source used to draw the secret.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// WithSecret pins the secret instead of drawing it. It must lie within the bounds.
func WithSecret(n int) Option {
	return func(g *Game) { g.fixed = &n }
}

// New creates a game for the roster. The secret is not drawn until [Game.Start].
func New(roster []Contestant, opts ...Option) (*Game, error) {
	g := &Game{
		bounds:   DefaultBounds,
		attempts: DefaultAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}

	if len(roster) == 0 {
		return nil, ErrNoPlayers
	}
	if g.attempts < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAttempts, g.attempts)
	}
	if g.bounds.Inverted() {
		return nil, fmt.Errorf("%w: bounds %s", ErrInvalidRange, g.bounds)
	}

	seen := make(map[string]bool, len(roster))
	for i, c := range roster {
		if c.Guesser == nil {
			return nil, fmt.Errorf("player %d (%q) has no guesser", i, c.Name)
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate player name %q", name)
		}
		seen[name] = true
		g.players = append(g.players, &Player{Name: name, Remaining: g.attempts})
		g.guessers = append(g.guessers, c.Guesser)
	}
	g.valid = g.bounds
	return g, nil
}

// Start draws the secret and moves the game to [InProgress].
func (g *Game) Start() error {
	if g.status != NotStarted {
		return ErrAlreadyStarted
	}
	if g.fixed != nil {
		if !g.bounds.Contains(*g.fixed) {
			return fmt.Errorf("%w: secret %d outside %s", ErrInvalidRange, *g.fixed, g.bounds)
		}
		g.secret = *g.fixed
	} else {
		s, err := NewSecret(g.rng, g.bounds.Lower, g.bounds.Upper)
		if err != nil {
			return err
		}
		g.secret = s
	}
	g.status = InProgress
	return nil
}

// Status returns the current state.
func (g *Game) Status() Status { return g.status }

// Bounds returns the declared range.
func (g *Game) Bounds() Range { return g.bounds }

// Valid returns the range consistent with all feedback given so far.
func (g *Game) Valid() Range { return g.valid }

// Round returns the current round, starting at 1 once play begins.
func (g *Game) Round() int { return g.round }

// Attempts returns the per-player attempt budget.
func (g *Game) Attempts() int { return g.attempts }

// Players returns the roster in turn order.
func (g *Game) Players() []*Player { return g.players }

// Winner returns the winning player, or nil.
func (g *Game) Winner() *Player { return g.winner }

// Turns returns a copy of the shared turn log.
func (g *Game) Turns() []Turn {
	out := make([]Turn, len(g.log))
	copy(out, g.log)
	return out
}

// Secret returns the secret once the game is over. While the game is running
// it reports false.
func (g *Game) Secret() (int, bool) {
	if !g.status.Terminal() {
		return 0, false
	}
	return g.secret, true
}

// exhausted reports whether no player has attempts left.
func (g *Game) exhausted() bool {
	for _, p := range g.players {
		if p.Active() {
			return false
		}
	}
	return true
}

// othersResults returns the classified guesses of everyone except p, in turn order.
func (g *Game) othersResults(p *Player) []Result {
	var out []Result
	for _, t := range g.log {
		if t.Player != p.Name && !t.Forfeited {
			out = append(out, t.Result)
		}
	}
	return out
}
