package schools

import (
	"context"

	"github.com/iamsahilydv/reno-test/database/models"
	"gorm.io/gorm"
)

// Repository 学校记录仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的学校记录仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 插入学校记录，成功后回填自增 ID
func (r *Repository) Create(ctx context.Context, school *models.School) error {
	return r.db.WithContext(ctx).Create(school).Error
}

// List 获取全部学校记录
func (r *Repository) List(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	err := r.db.WithContext(ctx).Find(&schools).Error
	return schools, err
}

// GetByID 通过 ID 获取学校记录
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.School, error) {
	var school models.School
	err := r.db.WithContext(ctx).First(&school, id).Error
	if err != nil {
		return nil, err
	}
	return &school, nil
}

// Update 保存学校记录的全部字段
func (r *Repository) Update(ctx context.Context, school *models.School) error {
	result := r.db.WithContext(ctx).Model(school).
		Select("name", "address", "city", "state", "contact", "email_id", "image", "image_width", "image_height").
		Updates(map[string]interface{}{
			"name":         school.Name,
			"address":      school.Address,
			"city":         school.City,
			"state":        school.State,
			"contact":      school.Contact,
			"email_id":     school.EmailID,
			"image":        school.Image,
			"image_width":  school.ImageWidth,
			"image_height": school.ImageHeight,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除学校记录
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.School{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListImageIdentifiers 获取全部被引用的图片标识符
func (r *Repository) ListImageIdentifiers(ctx context.Context) ([]string, error) {
	var identifiers []string
	err := r.db.WithContext(ctx).Model(&models.School{}).
		Where("image IS NOT NULL AND image <> ''").
		Pluck("image", &identifiers).Error
	return identifiers, err
}
