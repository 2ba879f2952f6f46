// Copyright (c) Microsoft. All rights reserved.

package show

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Action is the structured reply a contestant model must produce.
type Action struct {
	Number     json.Number `json:"number" jsonschema:"type=integer,description=The integer you guess"`
	Reasoning  string      `json:"reasoning" jsonschema:"description=One or two sentences of strategy behind the guess"`
	Confidence float64     `json:"confidence" jsonschema:"description=How sure you are from 0 to 1,minimum=0,maximum=1"`
}

var errNoNumber = errors.New("reply holds no integer guess")

// ParseAction extracts an [Action] from a model reply. It accepts a bare JSON
// object, one wrapped in a Markdown code fence or surrounded by prose, and a
// reply that is just an integer.
func ParseAction(reply string) (Action, int, error) {
	text := strings.TrimSpace(reply)
	if text == "" {
		return Action{}, 0, fmt.Errorf("%w: empty reply", errNoNumber)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return Action{Number: json.Number(text)}, n, nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return Action{}, 0, fmt.Errorf("%w: %q", errNoNumber, truncate(text, 80))
	}

	var a Action
	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.UseNumber()
	if err := dec.Decode(&a); err != nil {
		return Action{}, 0, fmt.Errorf("decode reply: %w", err)
	}
	if a.Number == "" {
		return Action{}, 0, fmt.Errorf("%w: missing number field", errNoNumber)
	}

	n, err := toInt(a.Number)
	if err != nil {
		return Action{}, 0, err
	}
	return a, n, nil
}

// toInt accepts integral JSON numbers, including ones written as 42.0.
func toInt(num json.Number) (int, error) {
	if n, err := num.Int64(); err == nil {
		return int(n), nil
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s is not an integer", errNoNumber, num)
	}
	return int(f), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
