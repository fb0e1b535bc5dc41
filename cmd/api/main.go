package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/audit"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/backup"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/config"
	dbpkg "github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/db"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/lock"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/logger"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logg := logger.New(cfg.Env)
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server stopped with error", zap.Error(err))
	}
	logg.Info("server gracefully stopped")
}

func run(cfg *config.Config, logg *zap.Logger) error {
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ------------------------------
	// Store
	// ------------------------------
	st, err := dbpkg.OpenStore(cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logg.Warn("store close failed", zap.Error(err))
		}
	}()

	// ------------------------------
	// Locks
	// ------------------------------
	var locker lock.Locker = lock.NewLocalLocker(cfg.LockWait)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()

		if err := rdb.Ping(rootCtx).Err(); err != nil {
			logg.Warn("redis unreachable, using in-process locks", zap.Error(err))
		} else {
			locker = lock.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait, logg)
			logg.Info("using redis locks", zap.String("addr", cfg.RedisAddr))
		}
	}

	// ------------------------------
	// Audit + backups
	// ------------------------------
	dispatcher := audit.NewDispatcher(audit.New(st), cfg.AuditBuffer, logg)

	var uploader backup.Uploader
	if cfg.BackupsEnabled() {
		uploader = backup.NewS3Uploader(backup.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	backups := backup.NewService(st, uploader)

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := routes.NewEngine(routes.Deps{
		Config:  cfg,
		Store:   st,
		Locker:  locker,
		Audit:   dispatcher,
		Backups: backups,
	}, logg)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: engine,
	}

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		logg.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logg.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if cerr := dispatcher.Close(shutdownCtx); cerr != nil {
			logg.Warn("audit queue not drained", zap.Error(cerr))
		}
		return err
	})

	return g.Wait()
}
