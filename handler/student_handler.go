package handler

import (
	"net/http"

	"github.com/abotl/abotl-backend/middleware"
	"github.com/abotl/abotl-backend/models"
	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentHandler struct {
	students service.StudentService
	tokens   *service.TokenService
	log      *zap.Logger
}

func NewStudentHandler(students service.StudentService, tokens *service.TokenService, log *zap.Logger) *StudentHandler {
	return &StudentHandler{students: students, tokens: tokens, log: log}
}

// studentProfile duplicates the image URL under both keys the frontend reads.
func studentProfile(s *models.Student) gin.H {
	return gin.H{
		"username":     s.Username,
		"email":        s.Email,
		"profileImage": s.ImageURL,
		"imageURL":     s.ImageURL,
	}
}

// Register handles multipart form registration with an optional
// "profilePicture" file.
func (h *StudentHandler) Register(c *gin.Context) {
	avatar, err := formFile(c, "profilePicture")
	if err != nil {
		respondError(c, err)
		return
	}

	student, err := h.students.Register(c.Request.Context(), service.RegisterStudentParams{
		Username: c.PostForm("username"),
		Password: c.PostForm("password"),
		Email:    c.PostForm("email"),
		Avatar:   avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(service.KindStudent, student.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"message": student.ID, "userData": student})
}

func (h *StudentHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	student, err := h.students.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(service.KindStudent, student.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": student.ID, "userData": student})
}

func (h *StudentHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Student logged out successfully"})
}

func (h *StudentHandler) Profile(c *gin.Context) {
	student, err := h.students.GetByID(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentProfile(student))
}

// UpdateProfile applies only the present, non-blank multipart fields; the
// optional file field is "profileImage".
func (h *StudentHandler) UpdateProfile(c *gin.Context) {
	avatar, err := formFile(c, "profileImage")
	if err != nil {
		respondError(c, err)
		return
	}

	student, err := h.students.UpdateProfile(c.Request.Context(), middleware.PrincipalID(c), service.UpdateStudentParams{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
		Avatar:   avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, studentProfile(student))
}

func (h *StudentHandler) DeleteAccount(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), middleware.PrincipalID(c)); err != nil {
		respondError(c, err)
		return
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Student account deleted successfully"})
}
