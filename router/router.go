package router

import (
	"net/http"
	"time"

	"github.com/abotl/abotl-backend/handler"
	"github.com/abotl/abotl-backend/middleware"
	"github.com/abotl/abotl-backend/service"

	"github.com/gin-gonic/gin"
)

func Setup(students *handler.StudentHandler, teachers *handler.TeacherHandler, videos *handler.VideoHandler, tokens *service.TokenService, env string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics("abotl-backend"))
	r.Use(middleware.RateLimit(middleware.GeneralLimit))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "OK",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": env,
		})
	})

	auth := r.Group("/api/auth", middleware.RateLimit(middleware.AuthLimit))
	{
		auth.POST("/student/register", students.Register)
		auth.POST("/student/login", students.Login)
		auth.POST("/student/logout", students.Logout)
		auth.POST("/teacher/register", teachers.Register)
		auth.POST("/teacher/login", teachers.Login)
		auth.POST("/teacher/logout", teachers.Logout)

		studentProfile := auth.Group("/student/profile", middleware.RequireStudent(tokens))
		{
			studentProfile.GET("", students.Profile)
			studentProfile.POST("", students.Profile)
			studentProfile.PUT("", students.UpdateProfile)
			studentProfile.DELETE("", students.DeleteAccount)
		}

		teacherProfile := auth.Group("/teacher/profile", middleware.RequireTeacher(tokens))
		{
			teacherProfile.GET("", teachers.Profile)
			teacherProfile.POST("", teachers.Profile)
			teacherProfile.PUT("", teachers.UpdateProfile)
			teacherProfile.DELETE("", teachers.DeleteAccount)
		}
	}

	t := r.Group("/api/teacher")
	{
		t.POST("/upload-video", middleware.RateLimit(middleware.UploadLimit), middleware.RequireTeacher(tokens), videos.Upload)
		t.GET("/videos", videos.ListAll)
		t.GET("/my-videos", middleware.RequireTeacher(tokens), videos.ListMine)
		t.POST("/videos/:videoId/like", videos.ToggleLike)
		t.DELETE("/videos/:videoId", middleware.RequireTeacher(tokens), videos.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	return r
}
