package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User    UserRepository
	Story   StoryRepository
	Session SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Story:   NewStoryRepository(db),
		Session: NewSessionRepository(db),
	}
}
