package gemini

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"google.golang.org/genai"

	"math_solver/internal/feature/solve/usecase"
)

// noFormulaMarker は数式が見つからない場合にモデルへ返させる文字列です。
const noFormulaMarker = "NO_FORMULA"

// recognizeInstruction は画像からLaTeXだけを抽出させる指示文です。
const recognizeInstruction = `Transcribe the math expression in this image into LaTeX.
Reply with the LaTeX source only: no explanation, no markdown, no $ delimiters.
If the image contains no math expression, reply with exactly ` + noFormulaMarker + `.`

// Recognizer はGeminiのマルチモーダル入力で画像からLaTeX数式を認識します。
type Recognizer struct {
	client *genai.Client
	model  string
}

// RecognizerがFormulaRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.FormulaRecognizer = (*Recognizer)(nil)

// NewRecognizer はRecognizerの新しいインスタンスを生成します。
func NewRecognizer(client *genai.Client, model string) *Recognizer {
	if model == "" {
		model = DefaultModel
	}
	return &Recognizer{client: client, model: model}
}

// Recognize は画像ファイルを読み込み、LaTeX数式を返します。数式がなければ空文字列です。
func (r *Recognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("unsupported image type %q", mimeType)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(recognizeInstruction),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}
	return NormalizeLatex(resp.Text()), nil
}

// NormalizeLatex はモデル出力からコードフェンスや数式デリミタを取り除きます。
// 数式なしのマーカーは空文字列になります。
func NormalizeLatex(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		// ```latex / ```tex などの言語指定を落とす
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}

	for _, d := range [][2]string{{"$$", "$$"}, {`\[`, `\]`}, {`\(`, `\)`}, {"$", "$"}} {
		if len(s) >= len(d[0])+len(d[1]) && strings.HasPrefix(s, d[0]) && strings.HasSuffix(s, d[1]) {
			s = strings.TrimSpace(s[len(d[0]) : len(s)-len(d[1])])
			break
		}
	}

	if strings.EqualFold(s, noFormulaMarker) {
		return ""
	}
	return s
}
