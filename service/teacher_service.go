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

type RegisterTeacherParams struct {
	Username string
	Password string
	Email    string
	Subjects []string
	Avatar   *FileUpload
}

type UpdateTeacherParams struct {
	Username string
	Email    string
	Password string
	// Subjects is nil when the field was absent from the request; an empty,
	// non-nil slice clears the list.
	Subjects *[]string
	Avatar   *FileUpload
}

type TeacherService interface {
	Register(ctx context.Context, params RegisterTeacherParams) (*models.Teacher, error)
	Login(ctx context.Context, email, password string) (*models.Teacher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateTeacherParams) (*models.Teacher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TeacherServiceImpl struct {
	repo     repository.TeacherRepository
	uploader MediaUploader
	mailer   Mailer
	log      *zap.Logger
}

func NewTeacherService(repo repository.TeacherRepository, uploader MediaUploader, mailer Mailer, log *zap.Logger) TeacherService {
	return &TeacherServiceImpl{repo: repo, uploader: uploader, mailer: mailer, log: log}
}

func (s *TeacherServiceImpl) Register(ctx context.Context, params RegisterTeacherParams) (*models.Teacher, error) {
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

	imageURL := ""
	if params.Avatar != nil {
		imageURL, err = s.uploader.Upload(ctx, id, params.Avatar)
		if err != nil {
			s.log.Warn("avatar upload failed", zap.String("username", params.Username), zap.Error(err))
			imageURL = ""
		}
	}

	subjects := params.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	teacher := &models.Teacher{
		Base:      models.Base{ID: id},
		Username:  params.Username,
		Password:  string(hash),
		Email:     params.Email,
		Subjects:  subjects,
		ImageURL:  imageURL,
		Followers: []uuid.UUID{},
		Videos:    []uuid.UUID{},
	}
	if err := s.repo.Create(teacher); err != nil {
		return nil, err
	}
	metrics.RegistrationsTotal.WithLabelValues(KindTeacher).Inc()

	if err := s.mailer.SendWelcome(ctx, teacher.Email, teacher.Username); err != nil {
		s.log.Warn("welcome mail enqueue failed", zap.String("email", teacher.Email), zap.Error(err))
	}

	return teacher, nil
}

// Login authenticates by email, unlike students who log in by username.
func (s *TeacherServiceImpl) Login(ctx context.Context, email, password string) (*models.Teacher, error) {
	teacher, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, ErrTeacherNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(password)) != nil {
		return nil, ErrInvalidPassword
	}
	return teacher, nil
}

func (s *TeacherServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Teacher, error) {
	teacher, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherServiceImpl) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateTeacherParams) (*models.Teacher, error) {
	teacher, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Username != "" && params.Username != teacher.Username {
		if other, err := s.repo.GetByUsername(params.Username); err == nil && other.ID != id {
			return nil, ErrUsernameTaken
		}
		teacher.Username = params.Username
	}
	if params.Email != "" && params.Email != teacher.Email {
		if other, err := s.repo.GetByEmail(params.Email); err == nil && other.ID != id {
			return nil, ErrEmailTaken
		}
		teacher.Email = params.Email
	}
	if params.Subjects != nil {
		teacher.Subjects = *params.Subjects
	}
	if strings.TrimSpace(params.Password) != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		teacher.Password = string(hash)
	}
	if params.Avatar != nil {
		url, err := s.uploader.Upload(ctx, id, params.Avatar)
		if err != nil {
			s.log.Warn("avatar upload failed", zap.String("teacher_id", id.String()), zap.Error(err))
		} else {
			teacher.ImageURL = url
		}
	}

	if err := s.repo.Update(teacher); err != nil {
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
