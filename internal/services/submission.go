package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/domain/gift"
	"github.com/yungbote/giftwizard-backend/internal/observability"
	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

// ErrEmptyGeneration is returned when a generator answers without ideas.
var ErrEmptyGeneration = errors.New("generation returned no gift ideas")

// GiftGenerator produces gift ideas for a request. The in-process generation
// service and the HTTP client in clients/giftapi both satisfy it.
type GiftGenerator interface {
	Generate(ctx context.Context, req domain.GiftRequest) (*domain.Generation, error)
}

type fieldMapping struct {
	QuestionID string
	Field      string
}

// submissionFields maps questionnaire ids to request body fields.
var submissionFields = []fieldMapping{
	{QuestionID: "nicknames", Field: gift.FieldCallThem},
	{QuestionID: "relationships", Field: gift.FieldRelationship},
	{QuestionID: "previousGifts", Field: gift.FieldPreviousGifts},
	{QuestionID: "dislikes", Field: gift.FieldHate},
	{QuestionID: "complaints", Field: gift.FieldComplaints},
	{QuestionID: "quirks", Field: gift.FieldComplainAboutThem},
	{QuestionID: "budget", Field: gift.FieldBudget},
	{QuestionID: "limitations", Field: gift.FieldLimitations},
}

// BuildGiftRequest maps wizard answers onto the request body. Missing answers
// become "".
func BuildGiftRequest(answers map[string]string) domain.GiftRequest {
	req := make(domain.GiftRequest, len(submissionFields))
	for _, m := range submissionFields {
		req[m.Field] = answers[m.QuestionID]
	}
	return req
}

// RequiredFields returns the request fields whose questions are required in cat.
func RequiredFields(cat *questionnaire.Catalog) []string {
	if cat == nil {
		cat = questionnaire.Default()
	}
	out := make([]string, 0, len(submissionFields))
	for _, m := range submissionFields {
		if q, ok := cat.Lookup(m.QuestionID); ok && q.Required {
			out = append(out, m.Field)
		}
	}
	return out
}

type SubmissionOutcome struct {
	Gifts    []domain.GiftIdea
	Fallback bool
	ResultID string
}

// SubmissionAdapter turns a completed questionnaire into gift ideas.
type SubmissionAdapter interface {
	Submit(ctx context.Context, answers map[string]string) (SubmissionOutcome, error)
	// Complete runs Submit and returns the event that settles a loading wizard.
	Complete(ctx context.Context, answers map[string]string) wizard.Event
}

type submissionAdapter struct {
	log             *logger.Logger
	generator       GiftGenerator
	fallbackEnabled bool
}

func NewSubmissionAdapter(log *logger.Logger, generator GiftGenerator, fallbackEnabled bool) SubmissionAdapter {
	return &submissionAdapter{
		log:             log.With("service", "SubmissionAdapter"),
		generator:       generator,
		fallbackEnabled: fallbackEnabled,
	}
}

func (a *submissionAdapter) Submit(ctx context.Context, answers map[string]string) (SubmissionOutcome, error) {
	ctx, end := observability.StartSpan(ctx, "wizard.submit")
	defer end()

	req := BuildGiftRequest(answers)
	a.log.Debug("submitting questionnaire", "relationship", req.Get(gift.FieldRelationship))

	gen, err := a.generate(ctx, req)
	if err == nil {
		observability.Current().IncSubmission("success")
		return SubmissionOutcome{Gifts: gen.GiftIdeas, ResultID: gen.ResultID}, nil
	}
	if !a.fallbackEnabled {
		observability.Current().IncSubmission("error")
		a.log.Warn("gift generation failed", "error", err)
		return SubmissionOutcome{}, err
	}
	observability.Current().IncSubmission("fallback")
	a.log.Warn("gift generation failed, using fallback gifts", "error", err)
	return SubmissionOutcome{Gifts: FallbackGifts(), Fallback: true}, nil
}

func (a *submissionAdapter) generate(ctx context.Context, req domain.GiftRequest) (*domain.Generation, error) {
	if a.generator == nil {
		return nil, fmt.Errorf("no gift generator configured")
	}
	gen, err := a.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if gen == nil || len(gen.GiftIdeas) == 0 {
		return nil, ErrEmptyGeneration
	}
	for i, idea := range gen.GiftIdeas {
		if strings.TrimSpace(idea.Title) == "" {
			return nil, fmt.Errorf("gift idea %d has no title", i+1)
		}
	}
	return gen, nil
}

func (a *submissionAdapter) Complete(ctx context.Context, answers map[string]string) wizard.Event {
	out, err := a.Submit(ctx, answers)
	if err != nil {
		return wizard.SubmitFailed(err)
	}
	return wizard.SubmitSucceeded(out.Gifts, out.Fallback, out.ResultID)
}
