// Package facts produces the short "fun fact" shown after a player's turn.
package facts

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/steps-and-leaps/internal/board"
)

//go:embed prompts/fact.txt
var factPrompt string

var factTemplate = template.Must(template.New("fact").Parse(factPrompt))

// ErrNoContent is returned when the model answers with nothing usable.
var ErrNoContent = errors.New("no content returned from Gemini")

// Service returns a fact for a landing cell. An empty string means no fact.
type Service interface {
	Fact(ctx context.Context, position int, difficulty board.Difficulty) (string, error)
}

// Disabled is the Service used when no API key is configured.
type Disabled struct{}

func (Disabled) Fact(context.Context, int, board.Difficulty) (string, error) {
	return "", nil
}

type Gemini struct {
	client   *genai.Client
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewGemini connects to Gemini with apiKey and uses modelName for every fact.
func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(1)
	model.SetMaxOutputTokens(64)
	return &Gemini{
		client: client,
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := model.GenerateContent(ctx, genai.Text(prompt))
			if err != nil {
				return "", err
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
				return "", ErrNoContent
			}
			text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
			if !ok {
				return "", fmt.Errorf("unexpected response type from Gemini")
			}
			return string(text), nil
		},
	}, nil
}

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) Fact(ctx context.Context, position int, difficulty board.Difficulty) (string, error) {
	prompt, err := renderPrompt(position, difficulty)
	if err != nil {
		return "", err
	}
	text, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return clean(text), nil
}

func renderPrompt(position int, difficulty board.Difficulty) (string, error) {
	cfg, err := board.ForDifficulty(difficulty)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Position int
		MaxScore int
		Hard     bool
	}{
		Position: position,
		MaxScore: cfg.MaxScore,
		Hard:     difficulty == board.Hard,
	}
	if err := factTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// clean strips whitespace, code fences and wrapping quotes the model
// sometimes adds.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"“”`)
	return strings.TrimSpace(s)
}
