// Package usecase はsolveフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"math_solver/internal/feature/solve/domain"
	"math_solver/internal/feature/solve/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
)

// FormulaRecognizer は画像ファイルからLaTeX数式を認識します。
// 数式が見つからない場合は空文字列を返します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FormulaRecognizer interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// SolutionGenerator はプロンプトから解答テキストを生成します。
type SolutionGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// UploadStore はアップロード画像の一時保存先です。
type UploadStore interface {
	// Save は内容を一意な一時ファイルへ書き込み、そのパスを返します。
	Save(name string, r io.Reader) (string, error)
	// Remove は一時ファイルを削除します。存在しない場合は何もしません。
	Remove(path string) error
}

// AttemptRecorder は解答リクエストの運用メタデータを記録します。
type AttemptRecorder interface {
	Record(ctx context.Context, attempt entity.SolveAttempt) error
}

// OutcomeObserver はリクエストの結果種別を集計します（メトリクス用）。
type OutcomeObserver interface {
	ObserveSolve(kind string, d time.Duration)
}

// solveUsecase は画像→LaTeX→解答のパイプラインを提供します。
type solveUsecase struct {
	recognizer FormulaRecognizer
	generator  SolutionGenerator
	uploads    UploadStore
	recorder   AttemptRecorder
	observer   OutcomeObserver
	now        func() time.Time
}

// Option はsolveUsecaseの任意の依存を設定します。
type Option func(*solveUsecase)

// WithAttemptRecorder は試行記録先を設定します。
func WithAttemptRecorder(r AttemptRecorder) Option {
	return func(u *solveUsecase) { u.recorder = r }
}

// WithOutcomeObserver は結果の集計先を設定します。
func WithOutcomeObserver(o OutcomeObserver) Option {
	return func(u *solveUsecase) { u.observer = o }
}

// NewSolveUsecase はsolveUsecaseの新しいインスタンスを生成します。
func NewSolveUsecase(r FormulaRecognizer, g SolutionGenerator, uploads UploadStore, opts ...Option) *solveUsecase {
	u := &solveUsecase{
		recognizer: r,
		generator:  g,
		uploads:    uploads,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Solve はアップロード画像を一時保存し、数式認識と解答生成を順に実行します。
// 一時ファイルはどの経路で終了しても削除されます。
func (u *solveUsecase) Solve(ctx context.Context, requestID string, img entity.UploadedImage) (result *entity.SolutionResult, err error) {
	started := u.now()
	var latex string
	defer func() {
		u.finish(ctx, requestID, started, latex, err)
	}()

	if img.Filename == "" {
		return nil, domain.ErrEmptyFilename
	}
	if img.Content == nil {
		return nil, domain.ErrMissingFile
	}
	if img.Size > MaxImageSize {
		return nil, fmt.Errorf("%w of %d bytes", domain.ErrImageTooLarge, MaxImageSize)
	}

	// サイズ申告が偽でも上限+1バイトで打ち切る
	limited := &io.LimitedReader{R: img.Content, N: MaxImageSize + 1}
	path, err := u.uploads.Save(img.Filename, limited)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save upload: %w", domain.ErrCollaborator, err)
	}
	defer func() {
		if rmErr := u.uploads.Remove(path); rmErr != nil {
			slog.Warn("一時ファイルの削除に失敗", "error", rmErr, "path", path, "request_id", requestID)
		}
	}()
	if limited.N <= 0 {
		return nil, fmt.Errorf("%w of %d bytes", domain.ErrImageTooLarge, MaxImageSize)
	}

	latex, err = u.recognizer.Recognize(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: formula recognition failed: %w", domain.ErrCollaborator, err)
	}
	latex = strings.TrimSpace(latex)
	if latex == "" {
		return nil, domain.ErrNoFormulaFound
	}
	slog.Info("数式を認識", "latex", latex, "request_id", requestID)

	solution, err := u.generator.Generate(ctx, BuildPrompt(latex))
	if err != nil {
		return nil, fmt.Errorf("%w: solution generation failed: %w", domain.ErrCollaborator, err)
	}

	return &entity.SolutionResult{Solution: solution, Latex: latex}, nil
}

// finish は結果を集計・記録します。記録の失敗はレスポンスに影響しません。
func (u *solveUsecase) finish(ctx context.Context, requestID string, started time.Time, latex string, err error) {
	elapsed := u.now().Sub(started)
	kind := domain.KindOf(err)

	if u.observer != nil {
		label := kind
		if label == "" {
			label = string(entity.OutcomeSolved)
		}
		u.observer.ObserveSolve(label, elapsed)
	}

	if u.recorder == nil {
		return
	}
	attempt := entity.SolveAttempt{
		RequestID:     requestID,
		Outcome:       entity.OutcomeSolved,
		ErrorKind:     kind,
		FormulaLength: len(latex),
		Duration:      elapsed,
		CreatedAt:     started,
	}
	if err != nil {
		attempt.Outcome = entity.OutcomeFailed
	}
	// リクエストがキャンセルされても記録は残す
	if rerr := u.recorder.Record(context.WithoutCancel(ctx), attempt); rerr != nil {
		slog.Warn("解答試行の記録に失敗", "error", rerr, "request_id", requestID)
	}
}
