// Package gemini はGoogle Gemini APIを使用した数式認識・解答生成クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// Config はGeminiクライアントの接続設定です。
type Config struct {
	APIKey      string // Gemini APIキー（Vertex AI利用時は空）
	UseVertexAI bool   // trueの場合ADCでVertex AIへ接続（GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要）
	BaseURL     string // テストやプロキシ用のエンドポイント上書き
}

// NewClient はプロセス全体で共有するgenaiクライアントを生成します。
func NewClient(ctx context.Context, cfg Config) (*genai.Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.UseVertexAI {
		cc.APIKey = ""
		cc.Backend = genai.BackendVertexAI
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}
