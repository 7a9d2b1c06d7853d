package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/config"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/controllers"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices/storage"
	"go.uber.org/zap"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	l, _ := zap.NewProduction()

	cfg, err := config.LoadEnvs()
	if err != nil {
		log.Fatalf("fail to load envs: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		panic(err)
	}

	migrations(cfg.DatabaseURL)

	repository := storage.NewPriceRepository(pool)
	controller := controllers.NewController(repository, l)

	router := setupRouter(controller)

	l.Info("starting server", zap.String("port", cfg.ServerPort))
	err = router.Run(fmt.Sprintf(":%s", cfg.ServerPort))
	if err != nil {
		panic(err)
	}
}

func setupRouter(ctrl *controllers.Controller) *gin.Engine {
	r := gin.Default()
	r.POST("/api/v1/prices/bulk", ctrl.BulkUpload)
	r.POST("/api/v1/prices/dedup", ctrl.Deduplicate)
	return r
}

func migrations(database string) {
	m, err := migrate.New(
		"file://database/migrations",
		database,
	)
	if err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("upload migrations error: %v", err)
	}

	log.Println("migrations finished.")
}
