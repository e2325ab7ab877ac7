package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newStudentService(repo *memStudentRepo, uploader *fakeUploader, mailer *fakeMailer) StudentService {
	return NewStudentService(repo, uploader, mailer, zap.NewNop())
}

func TestStudentRegisterThenLogin(t *testing.T) {
	repo := newMemStudentRepo()
	svc := newStudentService(repo, &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterStudentParams{
		Username: "alice", Password: "pw1", Email: "alice@x.com",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NotEqual(t, "pw1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw1")))

	logged, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func TestStudentRegisterMissingFields(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, &fakeMailer{})

	_, err := svc.Register(context.Background(), RegisterStudentParams{Username: "alice"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestStudentRegisterDuplicate(t *testing.T) {
	repo := newMemStudentRepo()
	svc := newStudentService(repo, &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "other@x.com"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(ctx, RegisterStudentParams{Username: "bob", Password: "pw", Email: "alice@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Neither conflicting attempt left a record behind.
	assert.Len(t, repo.students, 1)
}

func TestStudentLoginFailures(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.Login(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestStudentRegisterAvatarUploadFailureIsNonFatal(t *testing.T) {
	repo := newMemStudentRepo()
	svc := newStudentService(repo, &fakeUploader{failFrom: 1}, &fakeMailer{})

	created, err := svc.Register(context.Background(), RegisterStudentParams{
		Username: "alice", Password: "pw", Email: "alice@x.com",
		Avatar: &FileUpload{Name: "me.png", Data: []byte{1, 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, created.ImageURL)
	assert.Len(t, repo.students, 1)
}

func TestStudentRegisterSendsWelcomeMail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, mailer)

	_, err := svc.Register(context.Background(), RegisterStudentParams{
		Username: "alice", Password: "pw", Email: "alice@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice@x.com"}, mailer.sent)
}

func TestStudentRegisterMailFailureIsNonFatal(t *testing.T) {
	mailer := &fakeMailer{err: assert.AnError}
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, mailer)

	_, err := svc.Register(context.Background(), RegisterStudentParams{
		Username: "alice", Password: "pw", Email: "alice@x.com",
	})
	assert.NoError(t, err)
}

func TestStudentUpdateProfilePartial(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID, UpdateStudentParams{Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "new@x.com", updated.Email)

	// Absent and blank password fields leave the hash alone.
	_, err = svc.UpdateProfile(ctx, created.ID, UpdateStudentParams{Password: "   "})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice", "pw")
	assert.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, created.ID, UpdateStudentParams{Password: "pw2"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "alice", "pw2")
	assert.NoError(t, err)
}

func TestStudentUpdateProfileConflict(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, RegisterStudentParams{Username: "bob", Password: "pw", Email: "bob@x.com"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, bob.ID, UpdateStudentParams{Username: "alice"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.UpdateProfile(ctx, bob.ID, UpdateStudentParams{Email: "alice@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestStudentUpdateAvatarFailureKeepsOtherFields(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{failFrom: 1}, &fakeMailer{})
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID, UpdateStudentParams{
		Email:  "new@x.com",
		Avatar: &FileUpload{Name: "me.png", Data: []byte{1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)
	assert.Empty(t, updated.ImageURL)
}

func TestStudentDelete(t *testing.T) {
	svc := newStudentService(newMemStudentRepo(), &fakeUploader{}, &fakeMailer{})
	ctx := context.Background()

	created, err := svc.Register(ctx, RegisterStudentParams{Username: "alice", Password: "pw", Email: "alice@x.com"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrStudentNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrStudentNotFound)
}
