// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"math_solver/internal/api"
)

// readyTimeout は依存先チェック全体の上限です。
const readyTimeout = 2 * time.Second

// Checker は依存先（Redis, DBなど）への疎通を確認します。
type Checker func(ctx context.Context) error

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
	}
}

// Ready は /readyz を処理します。すべてのcheckが成功した場合のみ200を返します。
func Ready(checks map[string]Checker) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")

		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()

		results := make(map[string]string, len(names))
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		resp := api.HealthResponse{Status: "ok", Checks: &results}
		if status != http.StatusOK {
			resp.Status = "unavailable"
		}
		c.JSON(status, resp)
	}
}
