package wizard

import (
	"errors"
	"fmt"

	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

// Errors returned by Reduce. The returned State is always usable: on error it
// is the input State unchanged, so callers log and carry on.
var (
	ErrUnknownEvent    = errors.New("wizard: unknown event")
	ErrUnknownQuestion = errors.New("wizard: unknown question")
	ErrUnknownOption   = errors.New("wizard: unknown option")
	ErrOutOfRange      = errors.New("wizard: index out of range")
)

// Reduce applies e to s and returns the next State. Events that do not apply
// to the current phase are ignored without error.
func Reduce(cat *questionnaire.Catalog, s State, e Event) (State, error) {
	switch e.Type {
	case EventStart:
		if s.Phase != PhaseLanding {
			return s, nil
		}
		return freshQuestionnaire(), nil
	case EventReset:
		if s.Phase == PhaseLoading {
			return s, nil
		}
		return NewState(), nil
	case EventRetry:
		if s.Phase != PhaseError {
			return s, nil
		}
		return freshQuestionnaire(), nil
	case EventSubmitSucceeded:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		next := s.Clone()
		next.Phase = PhaseResults
		next.Gifts = e.Gifts
		next.UsedFallback = e.Fallback
		next.ResultID = e.ResultID
		next.Revealed = nil
		next.Error = ""
		return next, nil
	case EventSubmitFailed:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		next := s.Clone()
		next.Phase = PhaseError
		next.Error = e.Error
		if next.Error == "" {
			next.Error = NoticeGenerationFailed
		}
		return next, nil
	case EventReveal:
		return reveal(s, e.Index)
	case EventRevealAll:
		return revealAll(s), nil
	case EventDismiss:
		if s.Notice == "" {
			return s, nil
		}
		next := s.Clone()
		next.Notice = ""
		return next, nil
	}

	if !isQuestionnaireEvent(e.Type) {
		return s, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}
	if s.Phase != PhaseQuestionnaire {
		return s, nil
	}
	q, ok := cat.At(s.Index)
	if !ok {
		return s, fmt.Errorf("%w: question %d", ErrOutOfRange, s.Index)
	}

	next := s.Clone()
	var err error
	switch e.Type {
	case EventTextInput:
		err = next.textInput(cat, q, e)
	case EventToggleChip:
		err = next.toggleChip(cat, q, e)
	case EventBeginEdit:
		next.Editing = true
		next.ChipFocus = noFocus
	case EventEndEdit:
		next.endEdit(cat)
	case EventNext:
		next.next(cat)
	case EventPrev:
		next.prev(cat)
	case EventSubmit:
		next.submit(cat)
	case EventFocusNext:
		next.moveFocus(q, 1)
	case EventFocusPrev:
		next.moveFocus(q, -1)
	case EventFocusFirst:
		next.focusAt(q, 0)
	case EventFocusLast:
		next.focusAt(q, len(q.Options)-1)
	case EventToggleFocused:
		err = next.toggleFocused(q)
	case EventKey:
		err = next.key(cat, q, e.Key)
	}
	if err != nil {
		return s, err
	}
	return next, nil
}

func isQuestionnaireEvent(t EventType) bool {
	switch t {
	case EventTextInput, EventToggleChip, EventBeginEdit, EventEndEdit,
		EventNext, EventPrev, EventSubmit,
		EventFocusNext, EventFocusPrev, EventFocusFirst, EventFocusLast,
		EventToggleFocused, EventKey:
		return true
	}
	return false
}

func (s *State) target(cat *questionnaire.Catalog, active questionnaire.Question, id string) (questionnaire.Question, error) {
	if id == "" || id == active.ID {
		return active, nil
	}
	q, ok := cat.Lookup(id)
	if !ok {
		return questionnaire.Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, id)
	}
	return q, nil
}

func (s *State) textInput(cat *questionnaire.Catalog, active questionnaire.Question, e Event) error {
	q, err := s.target(cat, active, e.QuestionID)
	if err != nil {
		return err
	}
	s.Answers[q.ID] = e.Text
	s.Selections[q.ID] = selectionFromText(q, e.Text)
	delete(s.SyncPending, q.ID)
	return nil
}

func (s *State) toggleChip(cat *questionnaire.Catalog, active questionnaire.Question, e Event) error {
	q, err := s.target(cat, active, e.QuestionID)
	if err != nil {
		return err
	}
	sel, ok := toggleSelection(q, s.Selections[q.ID], e.Label)
	if !ok {
		return fmt.Errorf("%w: %q in %q", ErrUnknownOption, e.Label, q.ID)
	}
	s.Selections[q.ID] = sel
	if q.ID == active.ID {
		s.ChipFocus = optionIndex(q, e.Label)
	}
	if s.Editing && q.ID == active.ID {
		s.SyncPending[q.ID] = true
		return nil
	}
	s.Answers[q.ID] = rebuildAnswer(q, sel, s.Answers[q.ID])
	return nil
}

// endEdit leaves manual-edit mode and applies any rebuild deferred while it was on.
func (s *State) endEdit(cat *questionnaire.Catalog) {
	s.Editing = false
	for id := range s.SyncPending {
		if q, ok := cat.Lookup(id); ok {
			s.Answers[id] = rebuildAnswer(q, s.Selections[id], s.Answers[id])
		}
		delete(s.SyncPending, id)
	}
}

func (s *State) leaveQuestion() {
	s.ChipFocus = noFocus
	s.Notice = ""
}

func (s *State) next(cat *questionnaire.Catalog) {
	s.endEdit(cat)
	if IsLast(cat, *s) {
		return
	}
	if !CurrentAnswered(cat, *s) {
		s.Notice = NoticeAnswerRequired
		return
	}
	s.Index++
	s.leaveQuestion()
}

func (s *State) prev(cat *questionnaire.Catalog) {
	s.endEdit(cat)
	if s.Index == 0 {
		return
	}
	s.Index--
	s.leaveQuestion()
}

func (s *State) submit(cat *questionnaire.Catalog) {
	s.endEdit(cat)
	if !IsLast(cat, *s) {
		return
	}
	if !AllRequiredAnswered(cat, *s) {
		s.Notice = NoticeAllRequired
		return
	}
	s.Phase = PhaseLoading
	s.leaveQuestion()
}

func (s *State) nextOrSubmit(cat *questionnaire.Catalog) {
	if IsLast(cat, *s) {
		s.submit(cat)
		return
	}
	s.next(cat)
}

func optionIndex(q questionnaire.Question, label string) int {
	canonical, ok := q.CanonicalLabel(label)
	if !ok {
		return noFocus
	}
	for i, o := range q.Options {
		if o.Label == canonical {
			return i
		}
	}
	return noFocus
}

// moveFocus steps chip focus with wraparound. With nothing focused, forward
// lands on the first chip and backward on the last.
func (s *State) moveFocus(q questionnaire.Question, step int) {
	n := len(q.Options)
	if n == 0 {
		return
	}
	if s.ChipFocus < 0 || s.ChipFocus >= n {
		if step > 0 {
			s.ChipFocus = 0
		} else {
			s.ChipFocus = n - 1
		}
		return
	}
	s.ChipFocus = ((s.ChipFocus+step)%n + n) % n
}

func (s *State) focusAt(q questionnaire.Question, i int) {
	if i < 0 || i >= len(q.Options) {
		return
	}
	s.ChipFocus = i
}

func (s *State) toggleFocused(q questionnaire.Question) error {
	if s.ChipFocus < 0 {
		return nil
	}
	if s.ChipFocus >= len(q.Options) {
		return fmt.Errorf("%w: chip %d of %q", ErrOutOfRange, s.ChipFocus, q.ID)
	}
	sel, _ := toggleSelection(q, s.Selections[q.ID], q.Options[s.ChipFocus].Label)
	s.Selections[q.ID] = sel
	if s.Editing {
		s.SyncPending[q.ID] = true
		return nil
	}
	s.Answers[q.ID] = rebuildAnswer(q, sel, s.Answers[q.ID])
	return nil
}

// key maps keyboard input. While the text field is being edited only Escape
// is handled; arrows belong to the chip grid when a chip has focus.
func (s *State) key(cat *questionnaire.Catalog, q questionnaire.Question, key string) error {
	if key == KeyEscape {
		if s.Notice != "" {
			s.Notice = ""
		} else {
			s.ChipFocus = noFocus
		}
		return nil
	}
	if s.Editing {
		return nil
	}
	chipFocused := s.ChipFocus >= 0
	switch key {
	case KeyDown:
		s.moveFocus(q, 1)
	case KeyUp:
		s.moveFocus(q, -1)
	case KeyRight:
		if chipFocused {
			s.moveFocus(q, 1)
		} else {
			s.nextOrSubmit(cat)
		}
	case KeyLeft:
		if chipFocused {
			s.moveFocus(q, -1)
		} else {
			s.prev(cat)
		}
	case KeyHome:
		s.focusAt(q, 0)
	case KeyEnd:
		s.focusAt(q, len(q.Options)-1)
	case KeyEnter, KeySpace:
		return s.toggleFocused(q)
	}
	return nil
}
