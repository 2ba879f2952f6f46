// Copyright (c) Microsoft. All rights reserved.

package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor renders the JSON Schema of T with every struct inlined.
//
// Field descriptions and constraints come from `jsonschema` struct tags:
//
//	type Reply struct {
//	    Number int `json:"number" jsonschema:"description=Your guess"`
//	}
func SchemaFor[T any]() (json.RawMessage, error) {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(new(T))
	s.Version = ""
	s.ID = ""
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return b, nil
}

// MustSchemaFor is like [SchemaFor] but panics on error. It is meant for
// package-level variables.
func MustSchemaFor[T any]() json.RawMessage {
	b, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return b
}
