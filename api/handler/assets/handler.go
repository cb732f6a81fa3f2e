package assets

import (
	"errors"
	"io"
	"net/http"

	"github.com/iamsahilydv/reno-test/api/common"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/iamsahilydv/reno-test/utils/mime"
	"github.com/gin-gonic/gin"
)

// Handler 图片资源处理器，从存储层流式输出图片
type Handler struct {
	store storage.Provider
}

// NewHandler 创建图片资源处理器
func NewHandler(store storage.Provider) *Handler {
	return &Handler{store: store}
}

// GetAsset 输出存储中的图片
func (h *Handler) GetAsset(c *gin.Context) {
	identifier := c.Param("identifier")
	if identifier == "" {
		common.RespondError(c, http.StatusBadRequest, "Image identifier is required")
		return
	}

	stream, err := h.store.GetWithContext(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			common.RespondError(c, http.StatusNotFound, "Image not found")
			return
		}
		common.RespondError(c, http.StatusInternalServerError, "Failed to read image from storage")
		return
	}
	defer stream.Close()

	contentType := "application/octet-stream"
	if seeker, ok := stream.(io.ReadSeeker); ok {
		if sniffed, err := mime.SniffContentType(seeker); err == nil {
			contentType = sniffed
		}
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, stream)
}
