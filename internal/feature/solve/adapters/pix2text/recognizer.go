package pix2text

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"math_solver/internal/feature/solve/usecase"
)

// Recognizer はPix2TextサーバーのHTTP APIで画像からLaTeX数式を認識します。
type Recognizer struct {
	cfg    Config
	client *http.Client
}

// RecognizerがFormulaRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.FormulaRecognizer = (*Recognizer)(nil)

// NewRecognizer は指定された設定とHTTPクライアントでRecognizerの新しいインスタンスを生成します。
func NewRecognizer(cfg Config, client *http.Client) *Recognizer {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Recognizer{cfg: cfg, client: client}
}

// response は /pix2text のレスポンスボディです。
type response struct {
	StatusCode int             `json:"status_code"`
	Results    json.RawMessage `json:"results"`
}

// Recognize は画像を file_type=formula で送信し、認識されたLaTeXを返します。
func (r *Recognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	body, contentType, err := buildForm(imagePath)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/pix2text", body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", contentType)

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pix2text request failed: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("pix2text http %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out response
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("pix2text: malformed response: %w", err)
	}
	if out.StatusCode != 0 && out.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pix2text: status_code %d", out.StatusCode)
	}
	if len(out.Results) == 0 || string(out.Results) == "null" {
		return "", nil
	}

	var latex string
	if err := json.Unmarshal(out.Results, &latex); err != nil {
		return "", fmt.Errorf("pix2text: unexpected results payload: %w", err)
	}
	return strings.TrimSpace(latex), nil
}

// buildForm は画像ファイルとfile_typeを含むマルチパートボディを組み立てます。
func buildForm(imagePath string) (*bytes.Buffer, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if err := w.WriteField("file_type", "formula"); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile("image", filepath.Base(imagePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}
