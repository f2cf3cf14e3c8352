package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"math_solver/internal/feature/solve/usecase"
)

// Solver はGoogle Gemini APIを使用して数学の問題の解答を生成します。
type Solver struct {
	client *genai.Client
	model  string
}

// SolverがSolutionGeneratorを実装していることをコンパイル時に検証します。
var _ usecase.SolutionGenerator = (*Solver)(nil)

// NewSolver はSolverの新しいインスタンスを生成します。modelが空ならDefaultModelを使います。
func NewSolver(client *genai.Client, model string) *Solver {
	if model == "" {
		model = DefaultModel
	}
	return &Solver{client: client, model: model}
}

// Generate はプロンプトから解答テキストを生成します。
func (s *Solver) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini API returned an empty response")
	}
	return text, nil
}
