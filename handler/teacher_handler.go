package handler

import (
	"encoding/json"
	"net/http"

	"github.com/abotl/abotl-backend/middleware"
	"github.com/abotl/abotl-backend/models"
	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TeacherHandler struct {
	teachers service.TeacherService
	tokens   *service.TokenService
	log      *zap.Logger
}

func NewTeacherHandler(teachers service.TeacherService, tokens *service.TokenService, log *zap.Logger) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, tokens: tokens, log: log}
}

func teacherProfile(t *models.Teacher) gin.H {
	return gin.H{
		"username":     t.Username,
		"email":        t.Email,
		"profileImage": t.ImageURL,
		"imageURL":     t.ImageURL,
		"subjects":     t.Subjects,
	}
}

// parseSubjects accepts either a JSON array string (multipart forms serialize
// the list that way) or a bare value treated as a single subject.
func parseSubjects(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var subjects []string
	if err := json.Unmarshal([]byte(raw), &subjects); err == nil {
		return subjects
	}
	return []string{raw}
}

func (h *TeacherHandler) Register(c *gin.Context) {
	avatar, err := formFile(c, "profilePicture")
	if err != nil {
		respondError(c, err)
		return
	}

	teacher, err := h.teachers.Register(c.Request.Context(), service.RegisterTeacherParams{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Email:    c.PostForm("email"),
		Subjects: parseSubjects(c.PostForm("subjects")),
		Avatar:   avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(service.KindTeacher, teacher.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"message": teacher.ID, "userData": teacher})
}

// Login authenticates by email; students authenticate by username.
func (h *TeacherHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	teacher, err := h.teachers.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(service.KindTeacher, teacher.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": teacher.ID, "userData": teacher})
}

func (h *TeacherHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Teacher logged out successfully"})
}

func (h *TeacherHandler) Profile(c *gin.Context) {
	teacher, err := h.teachers.GetByID(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacherProfile(teacher))
}

func (h *TeacherHandler) UpdateProfile(c *gin.Context) {
	avatar, err := formFile(c, "profileImage")
	if err != nil {
		respondError(c, err)
		return
	}

	params := service.UpdateTeacherParams{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Avatar:   avatar,
	}
	if raw, ok := c.GetPostForm("subjects"); ok {
		subjects := parseSubjects(raw)
		params.Subjects = &subjects
	}

	teacher, err := h.teachers.UpdateProfile(c.Request.Context(), middleware.PrincipalID(c), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacherProfile(teacher))
}

func (h *TeacherHandler) DeleteAccount(c *gin.Context) {
	if err := h.teachers.Delete(c.Request.Context(), middleware.PrincipalID(c)); err != nil {
		respondError(c, err)
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Teacher account deleted successfully"})
}
