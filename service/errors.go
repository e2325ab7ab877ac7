package service

import "errors"

// Error messages mirror the envelope strings the frontend already depends on.
var (
	ErrStudentNotFound = errors.New("Student not found")
	ErrTeacherNotFound = errors.New("Teacher not found")
	ErrVideoNotFound   = errors.New("Video not found")

	ErrInvalidPassword = errors.New("Invalid password")
	ErrTokenExpired    = errors.New("token expired")
	ErrTokenInvalid    = errors.New("token invalid")

	ErrUsernameTaken = errors.New("Username already exists")
	ErrEmailTaken    = errors.New("Email already exists")

	ErrMissingFields     = errors.New("username, email and password are required")
	ErrTitleRequired     = errors.New("Title is required")
	ErrVideoRequired     = errors.New("Video file is required")
	ErrThumbnailRequired = errors.New("Thumbnail image is required")

	ErrNotVideoOwner = errors.New("Forbidden: You can only delete your own videos")

	ErrVideoUploadFailed     = errors.New("Video upload failed")
	ErrThumbnailUploadFailed = errors.New("Thumbnail upload failed")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrTeacherNotFound) ||
		errors.Is(err, ErrVideoNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrVideoRequired) ||
		errors.Is(err, ErrThumbnailRequired)
}
