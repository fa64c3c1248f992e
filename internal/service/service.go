package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"wanderlog/internal/config"
	"wanderlog/internal/repository"
)

type Services struct {
	Auth       AuthService
	Email      EmailService
	Image      ImageService
	Story      StoryService
	StoryQuery StoryQueryService
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := NewEmailService(cfg)
	imageService := NewImageService(minioClient, cfg)
	authService := NewAuthService(repos.User, repos.Session, emailService, cfg)
	storyService := NewStoryService(repos.Story, imageService, redisClient)
	storyQueryService := NewStoryQueryService(repos.Story, redisClient)

	return &Services{
		Auth:       authService,
		Email:      emailService,
		Image:      imageService,
		Story:      storyService,
		StoryQuery: storyQueryService,
	}
}
