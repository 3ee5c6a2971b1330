package wizard

import (
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/domain"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

type Phase string

const (
	PhaseLanding       Phase = "landing"
	PhaseQuestionnaire Phase = "questionnaire"
	PhaseLoading       Phase = "loading"
	PhaseResults       Phase = "results"
	PhaseError         Phase = "error"
)

const noFocus = -1

// State is the whole wizard. It is treated as a value: Reduce never mutates the
// State it is given.
type State struct {
	Phase Phase `json:"phase"`
	Index int   `json:"index"`

	// Answers holds the free text per question id.
	Answers map[string]string `json:"answers"`
	// Selections holds the selected option labels per question id.
	Selections map[string][]string `json:"selections"`

	Editing     bool            `json:"editing"`
	SyncPending map[string]bool `json:"sync_pending,omitempty"`
	ChipFocus   int             `json:"chip_focus"`
	Notice      string          `json:"notice,omitempty"`

	Gifts        []domain.GiftIdea `json:"gifts,omitempty"`
	UsedFallback bool              `json:"used_fallback,omitempty"`
	Revealed     []int             `json:"revealed,omitempty"`
	ResultID     string            `json:"result_id,omitempty"`
	Error        string            `json:"error,omitempty"`
}

func NewState() State {
	return State{
		Phase:       PhaseLanding,
		Answers:     map[string]string{},
		Selections:  map[string][]string{},
		SyncPending: map[string]bool{},
		ChipFocus:   noFocus,
	}
}

// freshQuestionnaire is the cleared state at question 0.
func freshQuestionnaire() State {
	s := NewState()
	s.Phase = PhaseQuestionnaire
	return s
}

func (s State) Clone() State {
	out := s
	out.Answers = make(map[string]string, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	out.Selections = make(map[string][]string, len(s.Selections))
	for k, v := range s.Selections {
		out.Selections[k] = append([]string(nil), v...)
	}
	out.SyncPending = make(map[string]bool, len(s.SyncPending))
	for k, v := range s.SyncPending {
		if v {
			out.SyncPending[k] = true
		}
	}
	if s.Gifts != nil {
		out.Gifts = append([]domain.GiftIdea(nil), s.Gifts...)
	}
	if s.Revealed != nil {
		out.Revealed = append([]int(nil), s.Revealed...)
	}
	return out
}

func (s State) Answer(id string) string { return s.Answers[id] }

func (s State) Selected(id string) []string {
	return append([]string(nil), s.Selections[id]...)
}

func (s State) IsSelected(id, label string) bool {
	return indexFold(s.Selections[id], label) >= 0
}

func (s State) hasAnswer(id string) bool {
	return strings.TrimSpace(s.Answers[id]) != ""
}

func (s State) current(cat *questionnaire.Catalog) (questionnaire.Question, bool) {
	if s.Phase != PhaseQuestionnaire {
		return questionnaire.Question{}, false
	}
	return cat.At(s.Index)
}
