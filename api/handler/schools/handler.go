package schools

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/iamsahilydv/reno-test/api/common"
	"github.com/iamsahilydv/reno-test/database/models"
	"github.com/iamsahilydv/reno-test/internal/school"
	"github.com/gin-gonic/gin"
)

// PublicImagePath 图片资源对外访问路径前缀
const PublicImagePath = "/schoolImages/"

// Handler 学校记录处理器
type Handler struct {
	service    *school.Service
	publicBase string
}

// NewHandler 创建学校记录处理器。
// publicBase 非空时图片 URL 带上该前缀（配置了对外域名的部署），为空时保持相对路径。
func NewHandler(service *school.Service, publicBase string) *Handler {
	return &Handler{
		service:    service,
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// schoolForm 边界处的类型化表单，绑定一次后交由服务层校验
type schoolForm struct {
	Name    string `form:"name"`
	Address string `form:"address"`
	City    string `form:"city"`
	State   string `form:"state"`
	Contact string `form:"contact"`
	EmailID string `form:"email_id"`
}

func (f *schoolForm) toInput() school.Input {
	return school.Input{
		Name:    f.Name,
		Address: f.Address,
		City:    f.City,
		State:   f.State,
		Contact: f.Contact,
		EmailID: f.EmailID,
	}
}

// formFile 提取可选的图片文件，未提交时返回 nil
func formFile(c *gin.Context) (*multipart.FileHeader, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

// schoolResponse 对外的学校记录表示，image 为公开 URL 或 null
type schoolResponse struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Contact string  `json:"contact"`
	EmailID string  `json:"email_id"`
	Image   *string `json:"image"`
}

func (h *Handler) toResponse(s *models.School) schoolResponse {
	return schoolResponse{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		City:    s.City,
		State:   s.State,
		Contact: s.Contact,
		EmailID: s.EmailID,
		Image:   h.imageURL(s),
	}
}

// imageURL 从存储标识符拼接公开 URL
func (h *Handler) imageURL(s *models.School) *string {
	if !s.HasImage() {
		return nil
	}
	url := h.publicBase + PublicImagePath + *s.Image
	return &url
}

// respondServiceError 将服务层错误分类映射为 HTTP 状态码
func respondServiceError(c *gin.Context, err error) {
	message := school.MessageOf(err)

	switch school.KindOf(err) {
	case school.KindValidation:
		common.RespondError(c, http.StatusBadRequest, message)
	case school.KindNotFound:
		common.RespondError(c, http.StatusNotFound, message)
	case school.KindPayloadTooLarge:
		common.RespondError(c, http.StatusRequestEntityTooLarge, message)
	case school.KindUnsupportedMedia:
		common.RespondError(c, http.StatusUnsupportedMediaType, message)
	default:
		common.RespondErrorDetails(c, http.StatusInternalServerError, message, school.DetailsOf(err))
	}
}
