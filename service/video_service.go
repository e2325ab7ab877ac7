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
	"gorm.io/gorm"
)

type UploadVideoParams struct {
	Title       string
	Description string
	Category    string
	Video       *FileUpload
	Thumbnail   *FileUpload
}

// VideoWithOwner joins a video with its owning teacher's public fields.
// OwnerUsername and OwnerImageURL stay empty when the owner was deleted.
type VideoWithOwner struct {
	Video         *models.Video
	OwnerUsername string
	OwnerImageURL string
}

type VideoService interface {
	Upload(ctx context.Context, teacherID uuid.UUID, params UploadVideoParams) (*models.Video, error)
	ListAll(ctx context.Context) ([]VideoWithOwner, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*models.Video, error)
	ToggleLike(ctx context.Context, videoID uuid.UUID, action string) (likes int, isLiked bool, err error)
	Delete(ctx context.Context, teacherID, videoID uuid.UUID) error
}

type VideoServiceImpl struct {
	videos   repository.VideoRepository
	teachers repository.TeacherRepository
	uploader MediaUploader
	log      *zap.Logger
}

func NewVideoService(videos repository.VideoRepository, teachers repository.TeacherRepository, uploader MediaUploader, log *zap.Logger) VideoService {
	return &VideoServiceImpl{videos: videos, teachers: teachers, uploader: uploader, log: log}
}

func (s *VideoServiceImpl) Upload(ctx context.Context, teacherID uuid.UUID, params UploadVideoParams) (*models.Video, error) {
	teacher, err := s.teachers.GetByID(teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.Video == nil || len(params.Video.Data) == 0 {
		return nil, ErrVideoRequired
	}
	if params.Thumbnail == nil || len(params.Thumbnail.Data) == 0 {
		return nil, ErrThumbnailRequired
	}

	// Either media upload failing aborts before any record exists.
	videoURL, err := s.uploader.Upload(ctx, teacherID, params.Video)
	if err != nil {
		s.log.Error("video upload failed", zap.String("teacher_id", teacherID.String()), zap.Error(err))
		metrics.VideoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, ErrVideoUploadFailed
	}
	thumbnailURL, err := s.uploader.Upload(ctx, teacherID, params.Thumbnail)
	if err != nil {
		s.log.Error("thumbnail upload failed", zap.String("teacher_id", teacherID.String()), zap.Error(err))
		metrics.VideoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, ErrThumbnailUploadFailed
	}

	category := params.Category
	if category == "" {
		category = "General"
	}

	video := &models.Video{
		Title:        strings.TrimSpace(params.Title),
		Description:  params.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		TeacherID:    teacherID,
		Category:     category,
		Likes:        0,
	}
	if err := s.videos.Create(video); err != nil {
		return nil, err
	}

	// The owner-set append is not transactional with the insert; a concurrent
	// upload against the same teacher can race on the array field.
	teacher.Videos = append(teacher.Videos, video.ID)
	if err := s.teachers.Update(teacher); err != nil {
		s.log.Warn("failed to append video to teacher's set",
			zap.String("teacher_id", teacherID.String()),
			zap.String("video_id", video.ID.String()),
			zap.Error(err))
	}

	metrics.VideoUploadsTotal.WithLabelValues("ok").Inc()
	return video, nil
}

func (s *VideoServiceImpl) ListAll(ctx context.Context) ([]VideoWithOwner, error) {
	videos, err := s.videos.ListNewestFirst()
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(videos))
	seen := make(map[uuid.UUID]bool)
	for _, v := range videos {
		if !seen[v.TeacherID] {
			seen[v.TeacherID] = true
			ids = append(ids, v.TeacherID)
		}
	}
	teachers, err := s.teachers.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*models.Teacher, len(teachers))
	for _, t := range teachers {
		byID[t.ID] = t
	}

	result := make([]VideoWithOwner, 0, len(videos))
	for _, v := range videos {
		row := VideoWithOwner{Video: v}
		if t, ok := byID[v.TeacherID]; ok {
			row.OwnerUsername = t.Username
			row.OwnerImageURL = t.ImageURL
		}
		result = append(result, row)
	}
	return result, nil
}

func (s *VideoServiceImpl) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*models.Video, error) {
	if _, err := s.teachers.GetByID(teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, err
	}
	return s.videos.ListByTeacher(teacherID)
}

// ToggleLike requires no authentication and keeps no per-user like record;
// any caller can move the counter. "unlike" decrements with a floor of zero,
// any other action increments.
func (s *VideoServiceImpl) ToggleLike(ctx context.Context, videoID uuid.UUID, action string) (int, bool, error) {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrVideoNotFound
		}
		return 0, false, err
	}

	isLiked := true
	if action == "unlike" {
		video.Likes = max(0, video.Likes-1)
		isLiked = false
	} else {
		video.Likes++
	}
	if err := s.videos.Update(video); err != nil {
		return 0, false, err
	}
	metrics.VideoLikesTotal.WithLabelValues(action).Inc()
	return video.Likes, isLiked, nil
}

func (s *VideoServiceImpl) Delete(ctx context.Context, teacherID, videoID uuid.UUID) error {
	video, err := s.videos.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}
	if video.TeacherID != teacherID {
		return ErrNotVideoOwner
	}

	// The row delete is the operation of record: a failed owner-set update is
	// logged and the delete still proceeds.
	teacher, err := s.teachers.GetByID(teacherID)
	if err == nil {
		kept := teacher.Videos[:0]
		for _, id := range teacher.Videos {
			if id != videoID {
				kept = append(kept, id)
			}
		}
		teacher.Videos = kept
		if err := s.teachers.Update(teacher); err != nil {
			s.log.Warn("failed to remove video from teacher's set",
				zap.String("teacher_id", teacherID.String()),
				zap.String("video_id", videoID.String()),
				zap.Error(err))
		}
	}

	return s.videos.Delete(videoID)
}
