package wizard

import "github.com/yungbote/giftwizard-backend/internal/questionnaire"

const (
	NoticeAnswerRequired   = "Please answer this question before continuing."
	NoticeAllRequired      = "Please answer all required questions before submitting."
	NoticeGenerationFailed = "Failed to generate gift ideas. Please try again."
)

func IsLast(cat *questionnaire.Catalog, s State) bool {
	return s.Index == cat.Len()-1
}

// CurrentAnswered reports whether the active question may be left forward:
// optional questions always may, required ones need a non-blank answer.
func CurrentAnswered(cat *questionnaire.Catalog, s State) bool {
	q, ok := cat.At(s.Index)
	if !ok {
		return false
	}
	return !q.Required || s.hasAnswer(q.ID)
}

func AllRequiredAnswered(cat *questionnaire.Catalog, s State) bool {
	for _, id := range cat.RequiredIDs() {
		if !s.hasAnswer(id) {
			return false
		}
	}
	return true
}

func CanNext(cat *questionnaire.Catalog, s State) bool {
	return s.Phase == PhaseQuestionnaire && !IsLast(cat, s) && CurrentAnswered(cat, s)
}

func CanPrev(s State) bool {
	return s.Phase == PhaseQuestionnaire && s.Index > 0
}

func CanSubmit(cat *questionnaire.Catalog, s State) bool {
	return s.Phase == PhaseQuestionnaire && IsLast(cat, s) && AllRequiredAnswered(cat, s)
}
