package service

import (
	"poker-hand-service/internal/repo"
	"poker-hand-service/internal/service/hand"

	"gorm.io/gorm"
)

type Container struct {
	Hand *hand.Service
}

func NewContainer(db *gorm.DB) *Container {
	return &Container{
		Hand: hand.NewService(repo.NewHandRepository(db)),
	}
}
