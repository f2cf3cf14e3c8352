// Package vision はGoogle Cloud Vision APIのOCRで数式テキストを抽出するクライアントを提供します。
package vision

import (
	"context"
	"fmt"
	"os"
	"strings"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"math_solver/internal/feature/solve/usecase"
)

// annotator はImageAnnotatorClientのうち本パッケージが使うメソッドです（テスト差し替え用）。
type annotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
}

// Recognizer はDOCUMENT_TEXT_DETECTIONの結果を数式として返します。
// VisionはLaTeXを出力しないため、手書きの一次元的な式（例: (x+3)^2=4）向けです。
type Recognizer struct {
	client annotator
	closer func() error
}

// RecognizerがFormulaRecognizerを実装していることをコンパイル時に検証します。
var _ usecase.FormulaRecognizer = (*Recognizer)(nil)

// NewRecognizer はADCを使用してRecognizerの新しいインスタンスを生成します。
func NewRecognizer(ctx context.Context) (*Recognizer, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &Recognizer{client: client, closer: client.Close}, nil
}

// Close はVision APIクライアントを解放します。
func (v *Recognizer) Close() error {
	if v.closer == nil {
		return nil
	}
	return v.closer()
}

// Recognize は画像ファイルからテキストを検出し、改行を空白にまとめた式を返します。
func (v *Recognizer) Recognize(ctx context.Context, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := v.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return "", nil
	}
	r := resp.Responses[0]
	if r.Error != nil {
		return "", fmt.Errorf("vision API error: %s", r.Error.Message)
	}
	if r.FullTextAnnotation == nil {
		return "", nil
	}
	return strings.Join(strings.Fields(r.FullTextAnnotation.Text), " "), nil
}
