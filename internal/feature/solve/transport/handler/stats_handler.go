package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"math_solver/internal/api"
	"math_solver/internal/feature/solve/domain/entity"
)

// AttemptStats は記録済み試行の集計を提供します。
type AttemptStats interface {
	CountByOutcome(ctx context.Context) (map[entity.Outcome]int64, error)
}

// StatsHandler は解答試行の集計を返します。
type StatsHandler struct {
	stats AttemptStats
}

// NewStatsHandler はStatsHandlerの新しいインスタンスを生成します。
func NewStatsHandler(stats AttemptStats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get は結果種別ごとの件数を返します。
//
// エンドポイント: GET /stats
func (h *StatsHandler) Get(c *gin.Context) {
	counts, err := h.stats.CountByOutcome(c.Request.Context())
	if err != nil {
		slog.Error("試行集計の取得に失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, api.StatsResponse{
		Solved: counts[entity.OutcomeSolved],
		Failed: counts[entity.OutcomeFailed],
	})
}
