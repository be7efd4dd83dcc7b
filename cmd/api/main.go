package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/novastellaa/BE-Infokus-Studio/internal/api"
	"github.com/novastellaa/BE-Infokus-Studio/internal/api/handler"
	apimiddleware "github.com/novastellaa/BE-Infokus-Studio/internal/api/middleware"
	"github.com/novastellaa/BE-Infokus-Studio/internal/application"
	"github.com/novastellaa/BE-Infokus-Studio/internal/config"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/postgres"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/queue"
	redisinfra "github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/redis"
	"github.com/novastellaa/BE-Infokus-Studio/internal/infrastructure/storage"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/logger"
	"github.com/novastellaa/BE-Infokus-Studio/internal/pkg/metrics"
	"github.com/novastellaa/BE-Infokus-Studio/internal/worker"
)

func main() {
	cfg := config.Load()

	// ロガー初期化
	logger.Set(logger.NewLogger(cfg.Server.Env))
	defer logger.Sync()

	// メトリクス初期化
	m := metrics.Init()

	// PostgreSQL接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗", zap.Error(err))
	}
	defer db.Close()

	// マイグレーション実行
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗", zap.Error(err))
	}

	// Redis接続
	redisClient := redisinfra.NewClient(&cfg.Redis)
	defer redisClient.Close()
	if err := redisinfra.Ping(context.Background(), redisClient); err != nil {
		logger.Fatal("Redis接続に失敗", zap.Error(err))
	}

	lockManager := redisinfra.NewLockManager(redisClient)
	slotCache := redisinfra.NewOccupiedSlotCache(redisClient)

	// メッセージブローカー
	publisher := queue.NewPublisher(cfg.Queue.URL)

	// オブジェクトストレージ（接続は遅延、初期化は資格情報の読み込みのみ）
	r2, err := storage.New(context.Background(), &cfg.Storage)
	if err != nil {
		logger.Fatal("ストレージ初期化に失敗", zap.Error(err))
	}
	imageService := application.NewImageService(r2)

	// リポジトリ
	txManager := postgres.NewTxManager(db)
	userRepo := postgres.NewUserRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)

	// アプリケーションサービス
	authService := application.NewAuthService(userRepo, &cfg.Auth)
	catalogService := application.NewCatalogService(catalogRepo)
	reservationService := application.NewReservationService(
		txManager, reservationRepo, paymentRepo, slotRepo, catalogRepo,
		lockManager, slotCache, publisher,
	)
	paymentService := application.NewPaymentService(txManager, paymentRepo, reservationRepo, publisher)
	reviewService := application.NewReviewService(reviewRepo, paymentService)

	// ハンドラー
	handlers := &api.Handlers{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(authService),
		Reservation: handler.NewReservationHandler(reservationService),
		Transaction: handler.NewTransactionHandler(paymentService),
		Catalog:     handler.NewCatalogHandler(catalogService),
		Review:      handler.NewReviewHandler(reviewService),
		Image:       handler.NewImageHandler(imageService),
	}

	// Echo セットアップ
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	apimiddleware.SetupMiddleware(e)
	e.Use(apimiddleware.PrometheusMiddleware(m))

	api.RegisterRoutes(e, handlers, cfg.Auth.JWTSecret)

	// 未払い予約キャンセラー起動
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	canceler := worker.NewUnpaidReservationCanceler(
		reservationService,
		cfg.Worker.CleanupInterval,
		cfg.Worker.PaymentWindow,
	)
	go canceler.Start(ctx)

	// サーバー起動
	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動に失敗", zap.Error(err))
		}
	}()
	logger.Info("サーバー起動", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))

	// シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("シャットダウン開始")

	canceler.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("サーバーシャットダウンに失敗", zap.Error(err))
	}

	logger.Info("シャットダウン完了")
}
