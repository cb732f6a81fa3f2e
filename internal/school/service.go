package school

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"mime/multipart"
	"strings"

	"github.com/iamsahilydv/reno-test/database/models"
	"github.com/iamsahilydv/reno-test/storage"
	"github.com/iamsahilydv/reno-test/utils/generator"
	"github.com/iamsahilydv/reno-test/utils/validator"
	"gorm.io/gorm"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Input 边界处构造一次的学校字段，后续各层作为可信值消费
type Input struct {
	Name    string
	Address string
	City    string
	State   string
	Contact string
	EmailID string
}

// Repository 服务依赖的记录仓库操作
type Repository interface {
	Create(ctx context.Context, school *models.School) error
	List(ctx context.Context) ([]models.School, error)
	GetByID(ctx context.Context, id uint) (*models.School, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id uint) error
}

// Service 学校记录服务，负责记录行与图片资源的一致性编排
type Service struct {
	repo           Repository
	store          storage.Provider
	maxUploadBytes int64
}

// NewService 创建学校记录服务
func NewService(repo Repository, store storage.Provider, maxUploadBytes int64) *Service {
	return &Service{
		repo:           repo,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create 新增学校记录：校验 → 上传（可选）→ 插入。
// 插入失败时补偿删除刚上传的资源。
func (s *Service) Create(ctx context.Context, in Input, file *multipart.FileHeader) (*models.School, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}

	school := &models.School{
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Contact: in.Contact,
		EmailID: in.EmailID,
	}

	if file != nil {
		identifier, width, height, err := s.uploadAsset(ctx, file)
		if err != nil {
			return nil, err
		}
		school.Image = &identifier
		school.ImageWidth = width
		school.ImageHeight = height
	}

	if err := s.repo.Create(ctx, school); err != nil {
		// 行未写入，补偿删除刚上传的资源
		if school.HasImage() {
			s.cleanupAsset(ctx, *school.Image)
		}
		return nil, WrapError(KindStore, "Database insert error", err)
	}

	return school, nil
}

// List 获取全部学校记录
func (s *Service) List(ctx context.Context) ([]models.School, error) {
	schools, err := s.repo.List(ctx)
	if err != nil {
		return nil, WrapError(KindStore, "Database fetch error", err)
	}
	return schools, nil
}

// Get 通过 ID 获取学校记录
func (s *Service) Get(ctx context.Context, id uint) (*models.School, error) {
	school, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "School not found")
		}
		return nil, WrapError(KindStore, "Database fetch error", err)
	}
	return school, nil
}

// Update 更新学校记录：查询 → 校验 → 上传（可选）→ 更新行 → 删除被替换的旧资源。
// 旧资源只在行更新成功之后删除，保证记录不会引用缺失的图片；
// 行更新失败时补偿删除新上传的资源，旧资源仍然有效。
func (s *Service) Update(ctx context.Context, id uint, in Input, file *multipart.FileHeader) (*models.School, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "School not found")
		}
		return nil, WrapError(KindStore, "Database fetch error", err)
	}

	if err := s.validate(in); err != nil {
		return nil, err
	}

	var oldImage string
	if existing.HasImage() {
		oldImage = *existing.Image
	}

	updated := &models.School{
		ID:          id,
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Contact:     in.Contact,
		EmailID:     in.EmailID,
		Image:       existing.Image,
		ImageWidth:  existing.ImageWidth,
		ImageHeight: existing.ImageHeight,
	}

	var newImage string
	if file != nil {
		identifier, width, height, err := s.uploadAsset(ctx, file)
		if err != nil {
			return nil, err
		}
		newImage = identifier
		updated.Image = &identifier
		updated.ImageWidth = width
		updated.ImageHeight = height
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		// 旧行保持原样，补偿删除新上传的资源
		if newImage != "" {
			s.cleanupAsset(ctx, newImage)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "School not found")
		}
		return nil, WrapError(KindStore, "Database update error", err)
	}

	// 行已指向新资源，旧资源降级为尽力删除
	if newImage != "" && oldImage != "" {
		s.cleanupAsset(ctx, oldImage)
	}

	return updated, nil
}

// Delete 删除学校记录：查询 → 删除行 → 尽力删除关联资源。
// 行删除失败时不触碰资源；行删除成功后资源删除失败只留下孤儿，不产生悬挂引用。
func (s *Service) Delete(ctx context.Context, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(KindNotFound, "School not found")
		}
		return WrapError(KindStore, "Database fetch error", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NewError(KindNotFound, "School not found")
		}
		return WrapError(KindStore, "Database delete error", err)
	}

	if existing.HasImage() {
		s.cleanupAsset(ctx, *existing.Image)
	}

	return nil
}

// validate 按字段缺失 → 邮箱 → 电话的顺序校验，无副作用
func (s *Service) validate(in Input) error {
	missing := validator.MissingFields(validator.Fields{
		Name:    in.Name,
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		Contact: in.Contact,
		EmailID: in.EmailID,
	})
	if len(missing) > 0 {
		return NewError(KindValidation,
			fmt.Sprintf("All fields except image are required. Missing: %s", strings.Join(missing, ", ")))
	}

	if !validator.IsValidEmail(in.EmailID) {
		return NewError(KindValidation, "Please provide a valid email address.")
	}

	if !validator.IsValidContact(in.Contact) {
		return NewError(KindValidation, "Please provide a valid contact number (at least 10 digits).")
	}

	return nil
}

// uploadAsset 在任何写入前做大小与内容检查，然后保存到存储并返回标识符和探测尺寸
func (s *Service) uploadAsset(ctx context.Context, file *multipart.FileHeader) (string, int, int, error) {
	if file.Size > s.maxUploadBytes {
		return "", 0, 0, NewError(KindPayloadTooLarge,
			fmt.Sprintf("Image exceeds the maximum allowed size of %d MB", s.maxUploadBytes>>20))
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, 0, WrapError(KindUploadFailed, "Failed to read uploaded file", err)
	}
	defer src.Close()

	ok, err := validator.IsImage(src)
	if err != nil {
		return "", 0, 0, WrapError(KindUploadFailed, "Failed to inspect uploaded file", err)
	}
	if !ok {
		return "", 0, 0, NewError(KindUnsupportedMedia, "Only image files are allowed")
	}

	width, height := probeDimensions(src)
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", 0, 0, WrapError(KindUploadFailed, "Failed to rewind uploaded file", err)
	}

	identifier := generator.AssetName(file.Filename)
	if err := s.store.SaveWithContext(ctx, identifier, src); err != nil {
		return "", 0, 0, WrapError(KindUploadFailed, "Failed to store uploaded image", err)
	}

	return identifier, width, height, nil
}

// probeDimensions 解码图片头获取尺寸，失败时返回零值（尺寸仅供参考）
func probeDimensions(src multipart.File) (int, int) {
	cfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}

// cleanupAsset 尽力删除资源，失败只记录日志，绝不向调用方暴露第二个错误
func (s *Service) cleanupAsset(ctx context.Context, identifier string) {
	if err := s.store.DeleteWithContext(ctx, identifier); err != nil {
		log.Printf("Failed to delete asset '%s' from storage '%s': %v", identifier, s.store.Name(), err)
	}
}
