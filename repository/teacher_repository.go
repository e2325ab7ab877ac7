package repository

import (
	"github.com/abotl/abotl-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	BaseRepository[models.Teacher]
	GetByUsername(username string) (*models.Teacher, error)
	GetByEmail(email string) (*models.Teacher, error)
	ListByIDs(ids []uuid.UUID) ([]*models.Teacher, error)
}

type TeacherRepositoryImpl struct {
	*BaseRepositoryImpl[models.Teacher]
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &TeacherRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Teacher](db)}
}

func (r *TeacherRepositoryImpl) GetByUsername(username string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Where("username = ?", username).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherRepositoryImpl) GetByEmail(email string) (*models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.Where("email = ?", email).First(&teacher).Error
	if err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *TeacherRepositoryImpl) ListByIDs(ids []uuid.UUID) ([]*models.Teacher, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teachers []*models.Teacher
	err := r.db.Where("id IN ?", ids).Find(&teachers).Error
	return teachers, err
}
