package core

import (
	"net/http"
	"time"

	"github.com/iamsahilydv/reno-test/api/middleware"
	"github.com/iamsahilydv/reno-test/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter 构建 gin 引擎并挂载全局中间件
func setupRouter(deps *RouterDependencies) *gin.Engine {
	cfg := deps.Config

	if !config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if config.IsDevelopment() {
		router.Use(gin.Logger())
	}
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.SetTrustedProxies(nil)

	// 限制上传文件大小
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	// 请求ID追踪
	router.Use(middleware.RequestID())

	RegisterRoutes(router, deps)

	return router
}

// StartServer 构建 HTTP 服务器，由调用方负责 ListenAndServe 与优雅退出
func StartServer(deps *RouterDependencies) *http.Server {
	cfg := deps.Config
	router := setupRouter(deps)

	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}
}
