package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service failures onto the `{"error": ...}` envelope.
func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotVideoOwner):
		return http.StatusForbidden
	case service.IsConflict(err), service.IsBadRequest(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Session cookie attributes: httpOnly, Secure, SameSite=None so the
// cross-origin frontend can send it, path "/".
func setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, int(service.SessionTTL.Seconds()), "/", "", true, true)
}

// clearSessionCookie expires the session by replacing the cookie with an
// already-expired empty one.
func clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
}

// formFile reads an optional multipart file into memory. A missing field
// yields nil without error.
func formFile(c *gin.Context, field string) (*service.FileUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.FileUpload{Name: fh.Filename, Data: data}, nil
}
