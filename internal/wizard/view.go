package wizard

import (
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

type ChipView struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Selected bool   `json:"selected"`
	Focused  bool   `json:"focused"`
}

type QuestionView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Placeholder string     `json:"placeholder"`
	Required    bool       `json:"required"`
	Answer      string     `json:"answer"`
	SyncPending bool       `json:"sync_pending"`
	Chips       []ChipView `json:"chips"`
	Number      int        `json:"number"`
	Total       int        `json:"total"`
}

type NavView struct {
	CanPrev    bool `json:"can_prev"`
	CanNext    bool `json:"can_next"`
	CanSubmit  bool `json:"can_submit"`
	ShowSubmit bool `json:"show_submit"`
}

type CardView struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Starter     string `json:"starter,omitempty"`
	Reaction    string `json:"reaction,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
	ImageURL    string `json:"image_url"`
	ShopURL     string `json:"shop_url"`
	Revealed    bool   `json:"revealed"`
}

// View is the render model derived from a State. Renderers read only this.
type View struct {
	Phase        Phase         `json:"phase"`
	Progress     int           `json:"progress"`
	Question     *QuestionView `json:"question,omitempty"`
	Nav          NavView       `json:"nav"`
	Editing      bool          `json:"editing"`
	Notice       string        `json:"notice,omitempty"`
	Cards        []CardView    `json:"cards,omitempty"`
	AllRevealed  bool          `json:"all_revealed"`
	UsedFallback bool          `json:"used_fallback"`
	ResultID     string        `json:"result_id,omitempty"`
	Error        string        `json:"error,omitempty"`
}

func Project(cat *questionnaire.Catalog, s State) View {
	v := View{
		Phase:        s.Phase,
		Editing:      s.Editing,
		Notice:       s.Notice,
		UsedFallback: s.UsedFallback,
		ResultID:     s.ResultID,
		Error:        s.Error,
	}
	if q, ok := s.current(cat); ok {
		v.Question = questionView(cat, s, q)
		v.Progress = (s.Index + 1) * 100 / cat.Len()
		v.Nav = NavView{
			CanPrev:    CanPrev(s),
			CanNext:    CanNext(cat, s),
			CanSubmit:  CanSubmit(cat, s),
			ShowSubmit: IsLast(cat, s),
		}
	}
	if s.Phase == PhaseResults {
		v.Progress = 100
		v.Cards = make([]CardView, len(s.Gifts))
		for i, g := range s.Gifts {
			v.Cards[i] = CardView{
				Index:       i,
				Title:       g.Title,
				Description: g.Description,
				Starter:     g.Starter,
				Reaction:    g.Reaction,
				PriceRange:  g.PriceRange,
				ImageURL:    g.CardImageURL(),
				ShopURL:     g.ShopURL(),
				Revealed:    IsRevealed(s, i),
			}
		}
		v.AllRevealed = AllRevealed(s)
	}
	return v
}

func questionView(cat *questionnaire.Catalog, s State, q questionnaire.Question) *QuestionView {
	qv := &QuestionView{
		ID:          q.ID,
		Title:       q.Title,
		Placeholder: q.Placeholder,
		Required:    q.Required,
		Answer:      s.Answers[q.ID],
		SyncPending: s.SyncPending[q.ID],
		Chips:       make([]ChipView, len(q.Options)),
		Number:      s.Index + 1,
		Total:       cat.Len(),
	}
	for i, o := range q.Options {
		qv.Chips[i] = ChipView{
			Label:    o.Label,
			Icon:     o.Icon,
			Selected: s.IsSelected(q.ID, o.Label),
			Focused:  s.ChipFocus == i,
		}
	}
	return qv
}
