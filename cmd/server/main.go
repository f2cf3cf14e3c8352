package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"math_solver/internal/app/config"
	"math_solver/internal/app/di"
	"math_solver/internal/app/router"
	solveadapters "math_solver/internal/feature/solve/adapters"
	"math_solver/internal/feature/solve/adapters/gemini"
	solvehandler "math_solver/internal/feature/solve/transport/handler"
	solveusecase "math_solver/internal/feature/solve/usecase"
	infradb "math_solver/internal/platform/db"
	"math_solver/internal/platform/http/handler"
	"math_solver/internal/platform/metrics"
	infraredis "math_solver/internal/platform/redis"
	"math_solver/internal/platform/tempfile"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .envを読み込む
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 外部クライアント（起動時に一度だけ生成）
	genaiClient, err := gemini.NewClient(ctx, cfg.Gemini)
	if err != nil {
		log.Fatal(err)
	}
	recognizer, closeRecognizer, err := di.NewRecognizer(ctx, cfg, genaiClient)
	if err != nil {
		log.Fatal("failed to create formula recognizer: ", err)
	}
	defer func() {
		if err := closeRecognizer(); err != nil {
			slog.Warn("failed to close recognizer", "error", err)
		}
	}()
	solver := gemini.NewSolver(genaiClient, cfg.GeminiModel)
	slog.Info("collaborators ready", "recognizer", cfg.Recognizer, "model", cfg.GeminiModel)

	uploads, err := tempfile.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}

	readyChecks := map[string]handler.Checker{}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Falling back to in-process rate limiter.")
		} else {
			rdb = tmp
			readyChecks["redis"] = infraredis.PingChecker(rdb)
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	m := metrics.New()
	opts := []solveusecase.Option{solveusecase.WithOutcomeObserver(m)}

	// DB（任意）
	var statsH *solvehandler.StatsHandler
	if cfg.DB.Enabled() {
		db, err := infradb.Open(cfg.DB, &solveadapters.AttemptModel{})
		if err != nil {
			log.Fatal(err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal(err)
		}
		defer func() { _ = sqlDB.Close() }()
		readyChecks["db"] = sqlDB.PingContext

		attempts := solveadapters.NewAttemptRepository(db)
		opts = append(opts, solveusecase.WithAttemptRecorder(attempts))
		statsH = solvehandler.NewStatsHandler(attempts)
	}

	// Usecase / Handler
	solveUC := solveusecase.NewSolveUsecase(recognizer, solver, uploads, opts...)
	solveH := solvehandler.NewSolveHandler(solveUC)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set; /solve is open to unauthenticated clients")
	}

	// ルータ生成
	r := router.NewRouter(router.Deps{
		Solve:            solveH,
		Stats:            statsH,
		Metrics:          m,
		Limiter:          di.NewLimiter(rdb, cfg.RateLimitPerMinute),
		JWTSecret:        cfg.JWTSecret,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		ReadyChecks:      readyChecks,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
