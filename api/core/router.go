package core

import (
	"github.com/iamsahilydv/reno-test/api/common"
	handlerAssets "github.com/iamsahilydv/reno-test/api/handler/assets"
	handlerSchools "github.com/iamsahilydv/reno-test/api/handler/schools"
	"github.com/iamsahilydv/reno-test/api/middleware"
	"github.com/iamsahilydv/reno-test/config"
	"github.com/iamsahilydv/reno-test/database"
	"github.com/iamsahilydv/reno-test/internal/school"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/gin-gonic/gin"
)

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DBProvider     database.Provider
	StorageFactory *storage.Factory
	SchoolService  *school.Service
	RateLimiter    *middleware.PerClientRateLimiter
	Config         *config.Config
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerAssetRoutes(router, deps)
	registerSchoolRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	healthHandler := NewHealthHandler(deps.DBProvider, deps.StorageFactory)
	router.GET("/health", healthHandler.Handle)

	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})
}

// registerAssetRoutes 注册图片资源访问路由
func registerAssetRoutes(router *gin.Engine, deps *RouterDependencies) {
	assetHandler := handlerAssets.NewHandler(deps.StorageFactory.GetDefault())

	assetGroup := router.Group("/schoolImages")
	if deps.RateLimiter != nil {
		assetGroup.Use(deps.RateLimiter.Middleware())
	}
	{
		assetGroup.GET("/:identifier", assetHandler.GetAsset)
	}
}

// registerSchoolRoutes 注册学校记录路由
func registerSchoolRoutes(router *gin.Engine, deps *RouterDependencies) {
	// 配置了对外域名时图片 URL 使用绝对地址，否则保持相对路径
	publicBase := ""
	if deps.Config.ServerDomain != "" {
		publicBase = deps.Config.BaseURL()
	}
	schoolHandler := handlerSchools.NewHandler(deps.SchoolService, publicBase)

	schoolGroup := router.Group("/schools")
	if deps.RateLimiter != nil {
		schoolGroup.Use(deps.RateLimiter.Middleware())
	}
	{
		schoolGroup.POST("", schoolHandler.CreateSchool)
		schoolGroup.GET("", schoolHandler.ListSchools)
		schoolGroup.GET("/:id", schoolHandler.GetSchool)
		schoolGroup.PUT("/:id", schoolHandler.UpdateSchool)
		schoolGroup.DELETE("/:id", schoolHandler.DeleteSchool)
	}

	router.NoRoute(func(c *gin.Context) {
		common.RespondError(c, 404, "Route not found")
	})
}
