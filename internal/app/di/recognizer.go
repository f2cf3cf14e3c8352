// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"math_solver/internal/app/config"
	"math_solver/internal/feature/solve/adapters/gemini"
	"math_solver/internal/feature/solve/adapters/pix2text"
	"math_solver/internal/feature/solve/adapters/vision"
	"math_solver/internal/feature/solve/usecase"
	infrahttp "math_solver/internal/platform/http"
)

// NewRecognizer creates the FormulaRecognizer selected by cfg.Recognizer.
// The returned close func releases any client the recognizer owns.
func NewRecognizer(ctx context.Context, cfg config.Config, client *genai.Client) (usecase.FormulaRecognizer, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Recognizer {
	case config.RecognizerPix2Text:
		httpClient := infrahttp.NewHTTPClient(cfg.Pix2Text.Timeout)
		return pix2text.NewRecognizer(cfg.Pix2Text, httpClient), noop, nil
	case config.RecognizerVision:
		v, err := vision.NewRecognizer(ctx)
		if err != nil {
			return nil, nil, err
		}
		return v, v.Close, nil
	case config.RecognizerGemini:
		return gemini.NewRecognizer(client, cfg.GeminiModel), noop, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownRecognizer, cfg.Recognizer)
	}
}
