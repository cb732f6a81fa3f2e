package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamsahilydv/reno-test/api/core"
	"github.com/iamsahilydv/reno-test/api/middleware"
	"github.com/iamsahilydv/reno-test/config"
	"github.com/iamsahilydv/reno-test/database"
	"github.com/iamsahilydv/reno-test/database/repo/schools"
	"github.com/iamsahilydv/reno-test/internal/school"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 数据库
	dbFactory, err := database.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := dbFactory.AutoMigrate(); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 存储
	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// 服务装配：所有依赖显式构造并注入，没有包级可变状态
	schoolsRepo := schools.NewRepository(dbFactory.GetProvider().DB())
	schoolService := school.NewService(schoolsRepo, storageFactory.GetDefault(), cfg.MaxUploadBytes())
	rateLimiter := middleware.NewPerClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	deps := &core.RouterDependencies{
		DBProvider:     dbFactory.GetProvider(),
		StorageFactory: storageFactory,
		SchoolService:  schoolService,
		RateLimiter:    rateLimiter,
		Config:         cfg,
	}

	// 启动gin
	server := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := dbFactory.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server exited successfully")
}
