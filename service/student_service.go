package service

import (
	"context"
	"errors"
	"strings"

	"github.com/abotl/abotl-backend/models"
	"github.com/abotl/abotl-backend/pkg/metrics"
	"github.com/abotl/abotl-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterStudentParams struct {
	Username string
	Password string
	Email    string
	Avatar   *FileUpload
}

type UpdateStudentParams struct {
	Username string
	Email    string
	Password string
	Avatar   *FileUpload
}

type StudentService interface {
	Register(ctx context.Context, params RegisterStudentParams) (*models.Student, error)
	Login(ctx context.Context, username, password string) (*models.Student, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateStudentParams) (*models.Student, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StudentServiceImpl struct {
	repo     repository.StudentRepository
	uploader MediaUploader
	mailer   Mailer
	log      *zap.Logger
}

func NewStudentService(repo repository.StudentRepository, uploader MediaUploader, mailer Mailer, log *zap.Logger) StudentService {
	return &StudentServiceImpl{repo: repo, uploader: uploader, mailer: mailer, log: log}
}

func (s *StudentServiceImpl) Register(ctx context.Context, params RegisterStudentParams) (*models.Student, error) {
	if params.Username == "" || params.Email == "" || params.Password == "" {
		return nil, ErrMissingFields
	}

	if _, err := s.repo.GetByUsername(params.Username); err == nil {
		return nil, ErrUsernameTaken
	}
	if _, err := s.repo.GetByEmail(params.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.New()

	// Avatar upload failure is non-fatal: the account is still created.
	imageURL := ""
	if params.Avatar != nil {
		imageURL, err = s.uploader.Upload(ctx, id, params.Avatar)
		if err != nil {
			s.log.Warn("avatar upload failed", zap.String("username", params.Username), zap.Error(err))
			imageURL = ""
		}
	}

	student := &models.Student{
		Base:              models.Base{ID: id},
		Username:          params.Username,
		Password:          string(hash),
		Email:             params.Email,
		FollowingTeachers: []uuid.UUID{},
		ImageURL:          imageURL,
	}
	if err := s.repo.Create(student); err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(KindStudent).Inc()

	if err := s.mailer.SendWelcome(ctx, student.Email, student.Username); err != nil {
		s.log.Warn("welcome mail enqueue failed", zap.String("email", student.Email), zap.Error(err))
	}

	return student, nil
}

// Login authenticates by username. Teachers log in by email; the asymmetry is
// part of the public contract, see TeacherService.Login.
func (s *StudentServiceImpl) Login(ctx context.Context, username, password string) (*models.Student, error) {
	student, err := s.repo.GetByUsername(username)
	if err != nil {
		return nil, ErrStudentNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}
	return student, nil
}

func (s *StudentServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Student, error) {
	student, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateStudentParams) (*models.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != "" && params.Username != student.Username {
		if other, err := s.repo.GetByUsername(params.Username); err == nil && other.ID != id {
			return nil, ErrUsernameTaken
		}
		student.Username = params.Username
	}
	if params.Email != "" && params.Email != student.Email {
		if other, err := s.repo.GetByEmail(params.Email); err == nil && other.ID != id {
			return nil, ErrEmailTaken
		}
		student.Email = params.Email
	}
	if strings.TrimSpace(params.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		student.Password = string(hash)
	}
	if params.Avatar != nil {
		url, err := s.uploader.Upload(ctx, id, params.Avatar)
		if err != nil {
			// Other field updates still go through.
			s.log.Warn("avatar upload failed", zap.String("student_id", id.String()), zap.Error(err))
		} else {
			student.ImageURL = url
		}
	}

	if err := s.repo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
