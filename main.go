package main

import (
	"context"

	"github.com/abotl/abotl-backend/config"
	"github.com/abotl/abotl-backend/database"
	"github.com/abotl/abotl-backend/handler"
	"github.com/abotl/abotl-backend/pkg/logger"
	"github.com/abotl/abotl-backend/pkg/metrics"
	"github.com/abotl/abotl-backend/repository"
	"github.com/abotl/abotl-backend/router"
	"github.com/abotl/abotl-backend/service"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Server.Env)
	defer log.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}

	uploader, err := service.NewMinioUploader(context.Background(), cfg.MinIO)
	if err != nil {
		log.Fatal("media uploader init failed", zap.Error(err))
	}

	mailer := service.NewKafkaMailer(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)
	defer mailer.Close()

	tokens := service.NewTokenService(cfg.JWT.Secret, service.SessionTTL)

	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	videoRepo := repository.NewVideoRepository(db)

	studentService := service.NewStudentService(studentRepo, uploader, mailer, log)
	teacherService := service.NewTeacherService(teacherRepo, uploader, mailer, log)
	videoService := service.NewVideoService(videoRepo, teacherRepo, uploader, log)

	studentHandler := handler.NewStudentHandler(studentService, tokens, log)
	teacherHandler := handler.NewTeacherHandler(teacherService, tokens, log)
	videoHandler := handler.NewVideoHandler(videoService, log)

	metrics.StartMetricsServer(cfg.Server.MetricsPort)

	r := router.Setup(studentHandler, teacherHandler, videoHandler, tokens, cfg.Server.Env)

	log.Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("metrics_port", cfg.Server.MetricsPort),
		zap.String("env", cfg.Server.Env))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
