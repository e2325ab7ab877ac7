package handler

import (
	"net/http"

	"github.com/abotl/abotl-backend/middleware"
	"github.com/abotl/abotl-backend/models"
	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VideoHandler struct {
	videos service.VideoService
	log    *zap.Logger
}

func NewVideoHandler(videos service.VideoService, log *zap.Logger) *VideoHandler {
	return &VideoHandler{videos: videos, log: log}
}

func videoListItem(v *models.Video, ownerUsername, ownerImageURL string) gin.H {
	return gin.H{
		"id":           v.ID,
		"title":        v.Title,
		"description":  v.Description,
		"videoURL":     v.VideoURL,
		"thumbnailURL": v.ThumbnailURL,
		"category":     v.Category,
		"likes":        v.Likes,
		"createdAt":    v.CreatedAt,
		"teacher": gin.H{
			"id":       v.TeacherID,
			"username": ownerUsername,
			"imageURL": ownerImageURL,
		},
	}
}

// Upload handles the multipart video form. The "visibility" field is accepted
// but not persisted, matching the existing frontend contract.
func (h *VideoHandler) Upload(c *gin.Context) {
	video, err := formFile(c, "video")
	if err != nil {
		respondError(c, err)
		return
	}
	thumbnail, err := formFile(c, "thumbnail")
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.videos.Upload(c.Request.Context(), middleware.PrincipalID(c), service.UploadVideoParams{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    c.PostForm("category"),
		Video:       video,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Video uploaded successfully",
		"video": gin.H{
			"id":           created.ID,
			"title":        created.Title,
			"videoURL":     created.VideoURL,
			"thumbnailURL": created.ThumbnailURL,
		},
	})
}

// ListAll is public: every video joined with its owner's public fields,
// newest first.
func (h *VideoHandler) ListAll(c *gin.Context) {
	rows, err := h.videos.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		out = append(out, videoListItem(row.Video, row.OwnerUsername, row.OwnerImageURL))
	}
	c.JSON(http.StatusOK, out)
}

func (h *VideoHandler) ListMine(c *gin.Context) {
	videos, err := h.videos.ListByTeacher(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if videos == nil {
		videos = []*models.Video{}
	}
	c.JSON(http.StatusOK, videos)
}

// ToggleLike needs no authentication and keeps no record of who liked.
func (h *VideoHandler) ToggleLike(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		respondError(c, service.ErrVideoNotFound)
		return
	}

	var req struct {
		Action string `json:"action"`
	}
	_ = c.ShouldBindJSON(&req)

	likes, isLiked, err := h.videos.ToggleLike(c.Request.Context(), videoID, req.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Video liked successfully"
	if !isLiked {
		message = "Video unliked successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "likes": likes, "isLiked": isLiked})
}

func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, err := uuid.Parse(c.Param("videoId"))
	if err != nil {
		respondError(c, service.ErrVideoNotFound)
		return
	}

	if err := h.videos.Delete(c.Request.Context(), middleware.PrincipalID(c), videoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}
