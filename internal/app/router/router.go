package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	solvehandler "math_solver/internal/feature/solve/transport/handler"
	"math_solver/internal/feature/solve/usecase"
	"math_solver/internal/platform/http/handler"
	"math_solver/internal/platform/http/middleware"
	jwtmw "math_solver/internal/platform/jwt"
	"math_solver/internal/platform/metrics"
	"math_solver/internal/shared/ratelimiter"
)

// multipartOverhead はマルチパートの境界・ヘッダ分の余裕です。
const multipartOverhead = 1 << 20

// Deps はルータが必要とするハンドラーと横断的な設定です。
// nil のフィールドは該当ルート・ミドルウェアを無効にします。
type Deps struct {
	Solve   *solvehandler.SolveHandler
	Stats   *solvehandler.StatsHandler
	Metrics *metrics.Metrics
	Limiter ratelimiter.Limiter

	JWTSecret        string
	CORSAllowOrigins []string
	ReadyChecks      map[string]handler.Checker
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = usecase.MaxImageSize

	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(d.CORSAllowOrigins)))
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", d.Metrics.Handler())
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.ReadyChecks))

	// 解答API
	// JWT_SECRET がある場合のみ認証必須
	api := r.Group("/")
	if d.JWTSecret != "" {
		api.Use(jwtmw.AuthRequired(d.JWTSecret))
	}
	{
		solveChain := []gin.HandlerFunc{middleware.BodyLimit(usecase.MaxImageSize + multipartOverhead)}
		if d.Limiter != nil {
			solveChain = append(solveChain, ratelimiter.Middleware(d.Limiter))
		}
		solveChain = append(solveChain, d.Solve.Solve)
		api.POST("/solve", solveChain...)

		if d.Stats != nil {
			api.GET("/stats", d.Stats.Get)
		}
	}

	return r
}

// corsConfig はブラウザのフロントエンドからの呼び出しを許可します。
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
