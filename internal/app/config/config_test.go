package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテスト対象の環境変数を空にします。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GEMINI_API_KEY", "GOOGLE_API_KEY", "GOOGLE_GENAI_USE_VERTEXAI", "GEMINI_MODEL",
		"GEMINI_BASE_URL", "RECOGNIZER", "UPLOAD_DIR", "CORS_ALLOW_ORIGINS", "RATE_LIMIT_PER_MINUTE",
		"JWT_SECRET", "REDIS_HOST", "DB_DRIVER", "PIX2TEXT_URL", "PIX2TEXT_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "key", cfg.Gemini.APIKey)
	assert.False(t, cfg.Gemini.UseVertexAI)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, RecognizerGemini, cfg.Recognizer)
	assert.Equal(t, filepath.Join(os.TempDir(), "math_solver_uploads"), cfg.UploadDir)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 20, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.JWTSecret)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.DB.Enabled())
	assert.Equal(t, "http://127.0.0.1:8503", cfg.Pix2Text.BaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")
	t.Setenv("PORT", "9000")
	t.Setenv("RECOGNIZER", "Pix2Text")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000, https://example.com ,")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)
	assert.Equal(t, RecognizerPix2Text, cfg.Recognizer)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoad_VertexWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_GENAI_USE_VERTEXAI", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Gemini.UseVertexAI)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"missing api key", map[string]string{}, ErrMissingAPIKey},
		{"unknown recognizer", map[string]string{"GEMINI_API_KEY": "k", "RECOGNIZER": "tesseract"}, ErrUnknownRecognizer},
		{"bad rate limit", map[string]string{"GEMINI_API_KEY": "k", "RATE_LIMIT_PER_MINUTE": "many"}, ErrInvalidValue},
		{"negative rate limit", map[string]string{"GEMINI_API_KEY": "k", "RATE_LIMIT_PER_MINUTE": "-1"}, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("loads variables", func(t *testing.T) {
		t.Setenv("MATH_SOLVER_DOTENV_TEST", "")
		require.NoError(t, os.Unsetenv("MATH_SOLVER_DOTENV_TEST"))
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("MATH_SOLVER_DOTENV_TEST=hello\n"), 0o600))

		require.NoError(t, LoadDotEnv(path))
		assert.Equal(t, "hello", os.Getenv("MATH_SOLVER_DOTENV_TEST"))
	})
}
