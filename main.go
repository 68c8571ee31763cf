package main

import (
	"context"
	"log"

	"meetingmate-backend/cmd/api"
	authdomain "meetingmate-backend/internal/auth/domain"
	authrepo "meetingmate-backend/internal/auth/repository"
	authusecase "meetingmate-backend/internal/auth/usecase"
	meetingdelivery "meetingmate-backend/internal/meeting/delivery"
	meetingdomain "meetingmate-backend/internal/meeting/domain"
	meetingrepo "meetingmate-backend/internal/meeting/repository"
	"meetingmate-backend/internal/meeting/scheduler"
	meetingusecase "meetingmate-backend/internal/meeting/usecase"
	"meetingmate-backend/internal/notification"
	"meetingmate-backend/pkg/ai"
	"meetingmate-backend/pkg/config"
	"meetingmate-backend/pkg/crypto"
	"meetingmate-backend/pkg/database"
	"meetingmate-backend/pkg/drive"
	"meetingmate-backend/pkg/gcal"
	"meetingmate-backend/pkg/gemini"
	"meetingmate-backend/pkg/gmailscan"
	"meetingmate-backend/pkg/googleauth"
	"meetingmate-backend/pkg/gtasks"
)

func main() {
	cfg := config.Load()

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&authdomain.User{}, &meetingdomain.MeetingRecord{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cipher, err := crypto.NewCipher(cfg.SecretKey)
	if err != nil {
		log.Fatalf("Failed to initialize cipher: %v", err)
	}

	provider := googleauth.NewProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cipher)

	geminiClient := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	summarizer := ai.NewSummarizer(geminiClient)
	extractor := ai.NewExtractor(geminiClient)

	driveSvc := drive.NewService()
	tasksSvc := gtasks.NewService()
	calendarSvc := gcal.NewService()
	gmailSvc := gmailscan.NewService()

	userRepo := authrepo.NewUserRepository(db)
	recordRepo := meetingrepo.NewMeetingRecordRepository(db)

	ingestUc := meetingusecase.NewIngestUsecase(
		userRepo, recordRepo, provider,
		driveSvc, summarizer, extractor, tasksSvc, calendarSvc,
	)
	meetingUc := meetingusecase.NewMeetingUsecase(userRepo, recordRepo, provider, tasksSvc, gmailSvc)
	calendarUc := meetingusecase.NewCalendarUsecase(userRepo, provider, calendarSvc)
	notifications := notification.NewService(recordRepo)

	authUc := authusecase.NewAuthUsecase(userRepo, provider, cipher, cfg)

	// On login, resolve the Meet Recordings folder and pull any transcripts
	// that landed while the user was away.
	authUc.SetPostLoginHook(func(userID string) {
		ctx := context.Background()
		user, err := userRepo.FindByID(userID)
		if err != nil || user == nil {
			log.Printf("[Main] Post-login lookup failed for %s: %v", userID, err)
			return
		}
		if err := ingestUc.EnsureMeetFolder(ctx, user); err != nil {
			log.Printf("[Main] Folder lookup failed for %s: %v", user.Email, err)
		}
		if _, err := ingestUc.RunForUser(ctx, user); err != nil {
			log.Printf("[Main] Initial ingestion failed for %s: %v", user.Email, err)
		}
	})

	sched := scheduler.NewScheduler(userRepo, ingestUc, cfg.SyncInterval)
	sched.Start()
	defer sched.Stop()

	meetingHandler := meetingdelivery.NewMeetingHandler(meetingUc, calendarUc, ingestUc, notifications)
	handler := api.NewHandler(authUc, meetingHandler, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
