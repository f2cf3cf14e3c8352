// Package config はサーバー起動時の環境変数設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"math_solver/internal/feature/solve/adapters/gemini"
	"math_solver/internal/feature/solve/adapters/pix2text"
	"math_solver/internal/platform/db"
	"math_solver/internal/platform/redis"
)

// 数式認識の実装の選択肢
const (
	RecognizerGemini   = "gemini"
	RecognizerPix2Text = "pix2text"
	RecognizerVision   = "vision"
)

const (
	defaultPort               = "8080"
	defaultRateLimitPerMinute = 20
)

var (
	ErrMissingAPIKey     = errors.New("GEMINI_API_KEY (or GOOGLE_API_KEY) is not set")
	ErrUnknownRecognizer = errors.New("unknown RECOGNIZER")
	ErrInvalidValue      = errors.New("invalid config value")
)

// Config はプロセス全体の設定です。起動時に一度だけ構築されます。
type Config struct {
	Port string

	Gemini      gemini.Config
	GeminiModel string
	Recognizer  string
	Pix2Text    pix2text.Config

	UploadDir        string
	CORSAllowOrigins []string

	Redis              redis.Config
	RateLimitPerMinute int // 0 で無効

	JWTSecret string // 空なら /solve は認証なし

	DB db.Config
}

// LoadDotEnv は .env があれば読み込みます。無い場合は何もしません。
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info(".env not found; using system environment variables", "path", path)
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load は環境変数から設定を組み立てて検証します。
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", defaultPort),
		GeminiModel: getEnv("GEMINI_MODEL", gemini.DefaultModel),
		Recognizer:  strings.ToLower(getEnv("RECOGNIZER", RecognizerGemini)),
		Pix2Text:    pix2text.LoadConfig(),
		UploadDir:   getEnv("UPLOAD_DIR", filepath.Join(os.TempDir(), "math_solver_uploads")),
		Redis:       redis.LoadConfig(),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DB:          db.LoadConfig(),
	}

	cfg.Gemini = gemini.Config{
		APIKey:      firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		UseVertexAI: strings.EqualFold(os.Getenv("GOOGLE_GENAI_USE_VERTEXAI"), "true"),
		BaseURL:     os.Getenv("GEMINI_BASE_URL"),
	}
	if cfg.Gemini.APIKey == "" && !cfg.Gemini.UseVertexAI {
		return Config{}, ErrMissingAPIKey
	}

	switch cfg.Recognizer {
	case RecognizerGemini, RecognizerPix2Text, RecognizerVision:
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownRecognizer, cfg.Recognizer)
	}

	cfg.CORSAllowOrigins = splitList(getEnv("CORS_ALLOW_ORIGINS", "*"))

	limit, err := getInt("RATE_LIMIT_PER_MINUTE", defaultRateLimitPerMinute)
	if err != nil {
		return Config{}, err
	}
	cfg.RateLimitPerMinute = limit

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v)
	}
	return n, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
