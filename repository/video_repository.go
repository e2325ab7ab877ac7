package repository

import (
	"github.com/abotl/abotl-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoRepository interface {
	BaseRepository[models.Video]
	ListNewestFirst() ([]*models.Video, error)
	ListByTeacher(teacherID uuid.UUID) ([]*models.Video, error)
}

type VideoRepositoryImpl struct {
	*BaseRepositoryImpl[models.Video]
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &VideoRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Video](db)}
}

func (r *VideoRepositoryImpl) ListNewestFirst() ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.Order("created_at DESC").Find(&videos).Error
	return videos, err
}

func (r *VideoRepositoryImpl) ListByTeacher(teacherID uuid.UUID) ([]*models.Video, error) {
	var videos []*models.Video
	err := r.db.Where("teacher_id = ?", teacherID).Order("created_at DESC").Find(&videos).Error
	return videos, err
}
