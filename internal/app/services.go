package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/services"
)

type Services struct {
	Catalog     *questionnaire.Catalog
	Images      services.ImageSearchService
	Placeholder services.PlaceholderService
	Results     services.ResultService
	Export      services.ExportService
	Generation  services.GiftGenerationService
	Submission  services.SubmissionAdapter
	Sessions    services.WizardSessionService

	// MemorySessions is set when sessions live in process and need sweeping.
	MemorySessions *services.MemorySessionStore
}

func loadCatalog(log *logger.Logger, path string) (*questionnaire.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return questionnaire.Default(), nil
	}
	cat, err := questionnaire.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	log.Info("Loaded question catalog", "path", path, "questions", cat.Len())
	return cat, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	cat, err := loadCatalog(log, cfg.QuestionsFile)
	if err != nil {
		return Services{}, err
	}

	placeholder, err := services.NewPlaceholderService(log, cfg.PlaceholderFont)
	if err != nil {
		return Services{}, fmt.Errorf("init placeholder renderer: %w", err)
	}

	images := services.NewImageSearchService(log, cfg.PlaceholderBaseURL(), clients.ImageProviders...)
	results := services.NewResultService(db, log, reposet.GiftResult, cfg.ResultTTL)
	generation := services.NewGiftGenerationService(log, clients.OpenAI, images, results, services.GiftGenerationConfig{
		RequiredFields: services.RequiredFields(cat),
		ImagesPerIdea:  cfg.ImagesPerIdea,
	})
	submission := services.NewSubmissionAdapter(log, generation, cfg.FallbackEnabled)

	out := Services{
		Catalog:     cat,
		Images:      images,
		Placeholder: placeholder,
		Results:     results,
		Export:      services.NewExportService(log, results, cfg.PlaceholderBaseURL()),
		Generation:  generation,
		Submission:  submission,
	}

	var store services.WizardSessionStore
	if clients.SessionStore != nil {
		store = clients.SessionStore
	} else {
		out.MemorySessions = services.NewMemorySessionStore()
		store = out.MemorySessions
	}
	out.Sessions = services.NewWizardSessionService(log, cat, store, submission, cfg.SessionTTL)
	return out, nil
}
