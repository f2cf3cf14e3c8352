// Package handler はsolveフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"math_solver/internal/api"
	"math_solver/internal/feature/solve/domain"
	"math_solver/internal/feature/solve/domain/entity"
	"math_solver/internal/platform/http/middleware"
)

// formField は画像を受け取るマルチパートのフィールド名です。
const formField = "image"

// SolveUsecase は画像から数式を認識して解答を生成するユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SolveUsecase interface {
	Solve(ctx context.Context, requestID string, img entity.UploadedImage) (*entity.SolutionResult, error)
}

// SolveHandler は数式画像の解答リクエストを処理します。
type SolveHandler struct {
	uc SolveUsecase
}

// NewSolveHandler はSolveHandlerの新しいインスタンスを生成します。
func NewSolveHandler(uc SolveUsecase) *SolveHandler {
	return &SolveHandler{uc: uc}
}

// Solve は画像をアップロードして数式の解答を返します。
//
// エンドポイント: POST /solve
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *SolveHandler) Solve(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	var req api.SolveRequest
	fh, err := c.FormFile(formField)
	if err != nil {
		// ファイル名が空のパートはmultipartの仕様上ファイルではなく値として格納される
		if errors.Is(err, http.ErrMissingFile) && hasValuePart(c, formField) {
			h.fail(c, requestID, domain.ErrEmptyFilename)
			return
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, requestID, fmt.Errorf("%w: request body exceeds %d bytes", domain.ErrImageTooLarge, tooLarge.Limit))
			return
		}
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP(), "request_id", requestID)
		h.fail(c, requestID, domain.ErrMissingFile)
		return
	}
	req.Image.InitFromMultipart(fh)

	if req.Image.Filename() == "" {
		h.fail(c, requestID, domain.ErrEmptyFilename)
		return
	}

	f, err := req.Image.Reader()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err, "request_id", requestID)
		h.fail(c, requestID, fmt.Errorf("%w: failed to open upload: %w", domain.ErrCollaborator, err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	result, err := h.uc.Solve(c.Request.Context(), requestID, entity.UploadedImage{
		Filename: req.Image.Filename(),
		Size:     req.Image.FileSize(),
		Content:  f,
	})
	if err != nil {
		h.fail(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, api.SolveResponse{
		Solution: result.Solution,
		Latex:    result.Latex,
	})
}

// fail はエラー種別をHTTPステータスに変換してレスポンスします。
func (h *SolveHandler) fail(c *gin.Context, requestID string, err error) {
	status := http.StatusInternalServerError
	if domain.IsValidation(err) {
		status = http.StatusBadRequest
		slog.Warn("解答リクエストを拒否", "kind", domain.KindOf(err), "error", err, "request_id", requestID)
	} else {
		slog.Error("解答の生成に失敗", "error", err, "request_id", requestID)
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}

func hasValuePart(c *gin.Context, field string) bool {
	form := c.Request.MultipartForm
	if form == nil {
		return false
	}
	_, ok := form.Value[field]
	return ok
}
