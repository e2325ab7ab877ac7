package service

import (
	"context"
	"fmt"
	"time"

	"github.com/abotl/abotl-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories standing in for the postgres-backed ones. They
// mimic gorm behavior where it matters: ErrRecordNotFound on misses and
// id/timestamp assignment on create.

type memStudentRepo struct {
	students map[uuid.UUID]*models.Student
}

func newMemStudentRepo() *memStudentRepo {
	return &memStudentRepo{students: make(map[uuid.UUID]*models.Student)}
}

func (r *memStudentRepo) Create(s *models.Student) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *memStudentRepo) GetByID(id uuid.UUID) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memStudentRepo) GetByUsername(username string) (*models.Student, error) {
	for _, s := range r.students {
		if s.Username == username {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) GetByEmail(email string) (*models.Student, error) {
	for _, s := range r.students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) Update(s *models.Student) error {
	if _, ok := r.students[s.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *memStudentRepo) Delete(id uuid.UUID) error {
	delete(r.students, id)
	return nil
}

type memTeacherRepo struct {
	teachers  map[uuid.UUID]*models.Teacher
	updateErr error
}

func newMemTeacherRepo() *memTeacherRepo {
	return &memTeacherRepo{teachers: make(map[uuid.UUID]*models.Teacher)}
}

func (r *memTeacherRepo) Create(t *models.Teacher) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	cp := *t
	r.teachers[t.ID] = &cp
	return nil
}

func (r *memTeacherRepo) GetByID(id uuid.UUID) (*models.Teacher, error) {
	t, ok := r.teachers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTeacherRepo) GetByUsername(username string) (*models.Teacher, error) {
	for _, t := range r.teachers {
		if t.Username == username {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTeacherRepo) GetByEmail(email string) (*models.Teacher, error) {
	for _, t := range r.teachers {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTeacherRepo) ListByIDs(ids []uuid.UUID) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, id := range ids {
		if t, ok := r.teachers[id]; ok {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memTeacherRepo) Update(t *models.Teacher) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.teachers[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *t
	r.teachers[t.ID] = &cp
	return nil
}

func (r *memTeacherRepo) Delete(id uuid.UUID) error {
	delete(r.teachers, id)
	return nil
}

type memVideoRepo struct {
	videos map[uuid.UUID]*models.Video
	seq    int
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{videos: make(map[uuid.UUID]*models.Video)}
}

func (r *memVideoRepo) Create(v *models.Video) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	// Monotonic timestamps so newest-first ordering is deterministic.
	r.seq++
	v.CreatedAt = time.Unix(int64(r.seq), 0)
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *memVideoRepo) GetByID(id uuid.UUID) (*models.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *memVideoRepo) Update(v *models.Video) error {
	if _, ok := r.videos[v.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *memVideoRepo) Delete(id uuid.UUID) error {
	delete(r.videos, id)
	return nil
}

func (r *memVideoRepo) ListNewestFirst() ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range r.videos {
		cp := *v
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memVideoRepo) ListByTeacher(teacherID uuid.UUID) ([]*models.Video, error) {
	var out []*models.Video
	for _, v := range r.videos {
		if v.TeacherID == teacherID {
			cp := *v
			out = append(out, &cp)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(videos []*models.Video) {
	for i := 0; i < len(videos); i++ {
		for j := i + 1; j < len(videos); j++ {
			if videos[j].CreatedAt.After(videos[i].CreatedAt) {
				videos[i], videos[j] = videos[j], videos[i]
			}
		}
	}
}

// fakeUploader returns deterministic URLs, optionally failing from the n-th
// call on (1-based; 0 means never fail).
type fakeUploader struct {
	calls    int
	failFrom int
}

func (u *fakeUploader) Upload(ctx context.Context, ownerID uuid.UUID, upload *FileUpload) (string, error) {
	u.calls++
	if u.failFrom > 0 && u.calls >= u.failFrom {
		return "", fmt.Errorf("media host unavailable")
	}
	return fmt.Sprintf("https://media.test/%s/%s", ownerID, upload.Name), nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendWelcome(ctx context.Context, to, username string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}
