// Recompute every enrollment's progress from the stored completion facts.
//
// Progress is normally maintained incrementally by the completion triggers.
// Run this after bulk-importing completions or repairing data by hand.
//
// Usage: go run scripts/recompute_progress.go
package main

import (
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	enrollments := service.NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCompletionRepository(db),
		repository.NewCourseRepository(db),
		repository.NewLessonRepository(db),
	)

	var all []model.Enrollment
	if err := db.Find(&all).Error; err != nil {
		log.Fatalf("failed to list enrollments: %v", err)
	}

	log.Printf("recomputing progress for %d enrollments...", len(all))
	changed := 0
	for _, e := range all {
		progress, err := enrollments.UpdateProgress(e.ID)
		if err != nil {
			log.Printf("enrollment %d: %v", e.ID, err)
			continue
		}
		if progress != e.Progress {
			changed++
		}
	}
	log.Printf("done, %d enrollments changed", changed)
}
