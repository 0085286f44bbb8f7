package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "task-track-system.com/task-track-system/internal/models"
)

func New(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Task{},
		&model.TaskDependency{},
		&model.TaskMember{},
		&model.ProjectMember{},
		&model.Comment{},
		&model.Notification{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
