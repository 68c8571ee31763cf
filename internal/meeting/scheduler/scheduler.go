package scheduler

import (
	"context"
	"log"
	"time"

	authrepo "meetingmate-backend/internal/auth/repository"
	"meetingmate-backend/internal/meeting/usecase"
)

// Scheduler polls Drive for every connected user on a fixed interval.
// Users are processed one at a time: a user's ingestion run is never
// concurrent with another run for the same user.
type Scheduler struct {
	users    authrepo.UserRepository
	ingest   usecase.IngestUsecase
	interval time.Duration
	stopChan chan struct{}
}

func NewScheduler(users authrepo.UserRepository, ingest usecase.IngestUsecase, interval time.Duration) *Scheduler {
	return &Scheduler{
		users:    users,
		ingest:   ingest,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
	log.Printf("[Scheduler] Started with interval %s", s.interval)
}

func (s *Scheduler) Stop() {
	close(s.stopChan)
	log.Println("[Scheduler] Stopped")
}

func (s *Scheduler) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Scheduler) runOnce() {
	users, err := s.users.FindAll()
	if err != nil {
		log.Printf("[Scheduler] Failed to list users: %v", err)
		return
	}

	ctx := context.Background()
	for _, user := range users {
		if user.RefreshTokenEnc == "" {
			continue
		}

		if err := s.ingest.EnsureMeetFolder(ctx, user); err != nil {
			log.Printf("[Scheduler] Folder lookup failed for %s: %v", user.Email, err)
		}

		report, err := s.ingest.RunForUser(ctx, user)
		if err != nil {
			log.Printf("[Scheduler] Ingestion failed for %s: %v", user.Email, err)
			continue
		}
		if report.RecordsCreated > 0 {
			log.Printf("[Scheduler] Created %d records for %s", report.RecordsCreated, user.Email)
		}
	}
}
