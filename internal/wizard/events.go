package wizard

import "github.com/yungbote/giftwizard-backend/internal/domain"

type EventType string

const (
	EventStart      EventType = "start"
	EventTextInput  EventType = "text_input"
	EventToggleChip EventType = "toggle_chip"
	EventBeginEdit  EventType = "begin_edit"
	EventEndEdit    EventType = "end_edit"
	EventNext       EventType = "next"
	EventPrev       EventType = "prev"
	EventSubmit     EventType = "submit"
	EventRetry      EventType = "retry"
	EventReset      EventType = "reset"
	EventDismiss    EventType = "dismiss"

	EventFocusNext     EventType = "focus_next"
	EventFocusPrev     EventType = "focus_prev"
	EventFocusFirst    EventType = "focus_first"
	EventFocusLast     EventType = "focus_last"
	EventToggleFocused EventType = "toggle_focused"
	EventKey           EventType = "key"

	EventReveal    EventType = "reveal"
	EventRevealAll EventType = "reveal_all"

	// Submission outcomes. Only the process running the submission emits them.
	EventSubmitSucceeded EventType = "submit_succeeded"
	EventSubmitFailed    EventType = "submit_failed"
)

// Keys understood by EventKey.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyUp     = "ArrowUp"
	KeyDown   = "ArrowDown"
	KeyHome   = "Home"
	KeyEnd    = "End"
	KeyEnter  = "Enter"
	KeySpace  = " "
	KeyEscape = "Escape"
)

// Event is one user or system action. QuestionID defaults to the active
// question when empty.
type Event struct {
	Type       EventType `json:"type"`
	QuestionID string    `json:"question_id,omitempty"`
	Label      string    `json:"label,omitempty"`
	Text       string    `json:"text,omitempty"`
	Key        string    `json:"key,omitempty"`
	Index      int       `json:"index,omitempty"`

	Gifts    []domain.GiftIdea `json:"gifts,omitempty"`
	Fallback bool              `json:"fallback,omitempty"`
	ResultID string            `json:"result_id,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Internal reports whether the event may only be produced by the submission
// flow, never by a client.
func (e Event) Internal() bool {
	return e.Type == EventSubmitSucceeded || e.Type == EventSubmitFailed
}

func Start() Event                    { return Event{Type: EventStart} }
func TextInput(id, text string) Event { return Event{Type: EventTextInput, QuestionID: id, Text: text} }
func ToggleChip(id, label string) Event {
	return Event{Type: EventToggleChip, QuestionID: id, Label: label}
}
func BeginEdit() Event     { return Event{Type: EventBeginEdit} }
func EndEdit() Event       { return Event{Type: EventEndEdit} }
func Next() Event          { return Event{Type: EventNext} }
func Prev() Event          { return Event{Type: EventPrev} }
func Submit() Event        { return Event{Type: EventSubmit} }
func Retry() Event         { return Event{Type: EventRetry} }
func Reset() Event         { return Event{Type: EventReset} }
func Dismiss() Event       { return Event{Type: EventDismiss} }
func Key(key string) Event { return Event{Type: EventKey, Key: key} }
func Reveal(i int) Event   { return Event{Type: EventReveal, Index: i} }
func RevealAll() Event     { return Event{Type: EventRevealAll} }

func SubmitSucceeded(gifts []domain.GiftIdea, fallback bool, resultID string) Event {
	return Event{Type: EventSubmitSucceeded, Gifts: gifts, Fallback: fallback, ResultID: resultID}
}

func SubmitFailed(err error) Event {
	msg := NoticeGenerationFailed
	if err != nil {
		msg = err.Error()
	}
	return Event{Type: EventSubmitFailed, Error: msg}
}
