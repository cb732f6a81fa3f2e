package core

import (
	"net/http"

	"github.com/iamsahilydv/reno-test/database"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	dbProvider     database.Provider
	storageFactory *storage.Factory
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(dbProvider database.Provider, storageFactory *storage.Factory) *HealthHandler {
	return &HealthHandler{
		dbProvider:     dbProvider,
		storageFactory: storageFactory,
	}
}

// Handle 报告数据库与存储的健康状态
func (h *HealthHandler) Handle(c *gin.Context) {
	dbStatus := h.checkDatabase()
	storageStatus := h.checkStorage(c)

	status := http.StatusOK
	if dbStatus != "ok" || storageStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"database": dbStatus,
		"storage":  storageStatus,
	})
}

func (h *HealthHandler) checkDatabase() string {
	if h.dbProvider == nil {
		return "not initialized"
	}
	if err := h.dbProvider.Ping(); err != nil {
		return "unavailable: " + err.Error()
	}
	return "ok"
}

func (h *HealthHandler) checkStorage(c *gin.Context) string {
	if h.storageFactory == nil {
		return "not initialized"
	}
	if err := h.storageFactory.HealthAll(c.Request.Context()); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
