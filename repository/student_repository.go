package repository

import (
	"github.com/abotl/abotl-backend/models"

	"gorm.io/gorm"
)

type StudentRepository interface {
	BaseRepository[models.Student]
	GetByUsername(username string) (*models.Student, error)
	GetByEmail(email string) (*models.Student, error)
}

type StudentRepositoryImpl struct {
	*BaseRepositoryImpl[models.Student]
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &StudentRepositoryImpl{BaseRepositoryImpl: NewBaseRepository[models.Student](db)}
}

func (r *StudentRepositoryImpl) GetByUsername(username string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("username = ?", username).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepositoryImpl) GetByEmail(email string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("email = ?", email).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
