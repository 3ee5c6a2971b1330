package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/apierr"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/platform/openai"
)

const (
	maxAnswerChars       = 1000
	expectedGiftIdeas    = 3
	defaultImagesPerIdea = 3
	enrichConcurrency    = 4
)

var dangerousPatterns = []string{"<script", "javascript:", "eval(", "exec("}

var requiredIdeaFields = []string{"title", "description", "starter", "reaction"}

// Public messages of /generate_gifts failures.
const (
	msgInvalidAIResponse    = "Invalid response from AI service"
	msgIncompleteAIResponse = "Incomplete gift idea generated"
	msgGenerationFailed     = "Internal server error occurred while generating gift ideas"
)

type GiftGenerationService interface {
	GiftGenerator
	// TestConnection sends a tiny completion and returns the model's reply.
	TestConnection(ctx context.Context) (string, error)
	Configured() bool
}

type GiftGenerationConfig struct {
	// RequiredFields must be present and non-empty in every request.
	RequiredFields []string
	ImagesPerIdea  int
}

type giftGenerationService struct {
	log     *logger.Logger
	ai      openai.Client
	images  ImageSearchService
	results ResultService
	cfg     GiftGenerationConfig
	now     func() time.Time
}

// NewGiftGenerationService wires the generator. ai may be nil when no API key
// is configured; Generate then fails with INTERNAL_ERROR. images and results
// are optional.
func NewGiftGenerationService(log *logger.Logger, ai openai.Client, images ImageSearchService, results ResultService, cfg GiftGenerationConfig) GiftGenerationService {
	if cfg.ImagesPerIdea <= 0 {
		cfg.ImagesPerIdea = defaultImagesPerIdea
	}
	if cfg.ImagesPerIdea > MaxImageCount {
		cfg.ImagesPerIdea = MaxImageCount
	}
	return &giftGenerationService{
		log:     log.With("service", "GiftGenerationService"),
		ai:      ai,
		images:  images,
		results: results,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *giftGenerationService) Configured() bool { return s.ai != nil }

func (s *giftGenerationService) TestConnection(ctx context.Context) (string, error) {
	if s.ai == nil {
		return "", openai.ErrNotConfigured
	}
	return s.ai.Ping(ctx)
}

func (s *giftGenerationService) Generate(ctx context.Context, req domain.GiftRequest) (*domain.Generation, error) {
	ctx, end := observability.StartSpan(ctx, "gifts.generate")
	defer end()

	if err := validateGiftRequest(req, s.cfg.RequiredFields); err != nil {
		observability.Current().IncGeneration("invalid_input")
		s.log.Warn("Invalid input data", "error", err.Error())
		return nil, err
	}
	clean := sanitizeGiftRequest(req)
	s.log.Info("Processing gift generation request", "relationship", clean.Get(gift.FieldRelationship))

	if s.ai == nil {
		observability.Current().IncGeneration("not_configured")
		s.log.Error("OpenAI API key not found")
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, errors.New(msgGenerationFailed))
	}

	content, err := s.ai.GenerateJSON(ctx, giftSystemPrompt, buildGiftPrompt(clean))
	if err != nil {
		observability.Current().IncGeneration("upstream_error")
		s.log.Error("Error generating gift ideas", "error", err)
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal, errors.New(msgGenerationFailed))
	}
	s.log.Info("Received response from OpenAI", "chars", len(content))

	ideas, err := parseGiftIdeas(content)
	if err != nil {
		observability.Current().IncGeneration(strings.ToLower(apierr.As(err).Code))
		s.log.Error("Rejected AI response", "error", err, "code", apierr.As(err).Code)
		return nil, err
	}
	if len(ideas) != expectedGiftIdeas {
		s.log.Warn("Unexpected gift idea count", "expected", expectedGiftIdeas, "got", len(ideas))
	}

	s.enrich(ctx, ideas)

	out := &domain.Generation{GiftIdeas: ideas, Timestamp: s.now()}
	if s.results != nil {
		saved, err := s.results.Save(ctx, clean, ideas, false)
		if err != nil {
			s.log.Warn("failed to persist gift result (ignored)", "error", err)
		} else {
			out.ResultID = saved.ID.String()
		}
	}
	observability.Current().IncGeneration("success")
	s.log.Info("Successfully generated gift ideas", "count", len(ideas), "result_id", out.ResultID)
	return out, nil
}

// enrich attaches images and an affiliate link to every idea. Failures only
// leave fields empty.
func (s *giftGenerationService) enrich(ctx context.Context, ideas []domain.GiftIdea) {
	ctx, end := observability.StartSpan(ctx, "gifts.enrich", attribute.Int("ideas", len(ideas)))
	defer end()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range ideas {
		i := i
		g.Go(func() error {
			idea := &ideas[i]
			query := firstNonBlank(idea.AmazonSearchQuery, idea.Title)
			if strings.TrimSpace(idea.AmazonLink) == "" && query != "" {
				idea.AmazonLink = gift.AmazonAffiliateLink(query)
			}
			if s.images != nil && len(idea.Images) == 0 {
				terms := firstNonBlank(idea.ImageSearchTerms, idea.Title)
				idea.Images = s.images.Search(gctx, terms, s.cfg.ImagesPerIdea)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func validateGiftRequest(req domain.GiftRequest, required []string) error {
	missing := make([]string, 0)
	for _, field := range required {
		if strings.TrimSpace(req.Get(field)) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return apierr.Invalid("Missing or empty responses for: %s", strings.Join(missing, ", "))
	}
	keys := make([]string, 0, len(req))
	for k := range req {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if utf8.RuneCountInString(strings.TrimSpace(req[k])) > maxAnswerChars {
			return apierr.Invalid("Answer for '%s' is too long (max %d characters)", k, maxAnswerChars)
		}
	}
	return nil
}

func sanitizeGiftRequest(req domain.GiftRequest) domain.GiftRequest {
	out := make(domain.GiftRequest, len(req))
	for k, v := range req {
		out[k] = sanitizeAnswer(v)
	}
	return out
}

func sanitizeAnswer(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) > maxAnswerChars {
		s = string([]rune(s)[:maxAnswerChars])
	}
	for _, p := range dangerousPatterns {
		s = strings.ReplaceAll(s, p, "")
	}
	return s
}

func parseGiftIdeas(content string) ([]domain.GiftIdea, error) {
	invalid := func(cause error) error {
		return apierr.New(http.StatusInternalServerError, apierr.CodeInvalidAIResponse,
			fmt.Errorf("%s: %w", msgInvalidAIResponse, cause))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &envelope); err != nil {
		return nil, invalid(err)
	}
	raw, ok := envelope["gift_ideas"]
	if !ok {
		return nil, invalid(errors.New("missing gift_ideas"))
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, invalid(errors.New("gift_ideas is not a list of objects"))
	}
	if len(items) == 0 {
		return nil, invalid(errors.New("gift_ideas is empty"))
	}
	for i, item := range items {
		for _, field := range requiredIdeaFields {
			v, _ := item[field].(string)
			if strings.TrimSpace(v) == "" {
				return nil, apierr.New(http.StatusInternalServerError, apierr.CodeIncompleteAIResponse,
					fmt.Errorf("%s: idea %d missing %s", msgIncompleteAIResponse, i+1, field))
			}
		}
	}
	var ideas []domain.GiftIdea
	if err := json.Unmarshal(raw, &ideas); err != nil {
		return nil, invalid(err)
	}
	return ideas, nil
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// PublicMessage is the client-facing text for a generation error.
func PublicMessage(err error) string {
	ae := apierr.As(err)
	switch ae.Code {
	case apierr.CodeInvalidAIResponse:
		return msgInvalidAIResponse
	case apierr.CodeIncompleteAIResponse:
		return msgIncompleteAIResponse
	case apierr.CodeInternal:
		return msgGenerationFailed
	}
	return ae.Error()
}
