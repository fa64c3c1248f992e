package handler

import "wanderlog/internal/service"

type Handlers struct {
	Auth  *AuthHandler
	User  *UserHandler
	Story *StoryHandler
	Image *ImageHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:  NewAuthHandler(services.Auth),
		User:  NewUserHandler(),
		Story: NewStoryHandler(services.Story, services.StoryQuery),
		Image: NewImageHandler(services.Image),
	}
}
