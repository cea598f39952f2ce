package main

import (
	"fmt"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens for the report summary. It is an interface so a
// run without token counting can carry a no-op implementation instead of
// nil checks everywhere.
type Tokenizer interface {
	CountTokens(text string) int
}

type tiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *tiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

type noopTokenizer struct{}

func (noopTokenizer) CountTokens(string) int { return 0 }

const fallbackTokenModel = "gpt-4o"

// newTokenizer resolves the tiktoken encoding for the configured model,
// falling back to the default model before giving up. Callers treat an
// error as "run without token counts", not as fatal.
func newTokenizer(model string) (Tokenizer, error) {
	if model == "" {
		model = fallbackTokenModel
	}
	ttk, err := tiktoken.EncodingForModel(model)
	if err != nil && model != fallbackTokenModel {
		ttk, err = tiktoken.EncodingForModel(fallbackTokenModel)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving tiktoken encoding for %q: %w", model, err)
	}
	return &tiktokenWrapper{ttk: ttk}, nil
}
