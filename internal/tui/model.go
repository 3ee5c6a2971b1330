package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
	"github.com/yungbote/giftwizard-backend/internal/wizard"
)

const defaultSubmitTimeout = 90 * time.Second

// Submitter settles a loading wizard. services.SubmissionAdapter satisfies it.
type Submitter interface {
	Complete(ctx context.Context, answers map[string]string) wizard.Event
}

type submitDoneMsg struct{ event wizard.Event }

type Options struct {
	Catalog       *questionnaire.Catalog
	Submitter     Submitter
	Log           *logger.Logger
	SubmitTimeout time.Duration
	// Sample fills the questionnaire on ctrl+t. Nil disables the shortcut.
	Sample map[string]string
}

// Model renders a wizard.Store in the terminal. All state lives in the store;
// the model only keeps widget state.
type Model struct {
	store     *wizard.Store
	submitter Submitter
	timeout   time.Duration
	sample    map[string]string

	input   textarea.Model
	spin    spinner.Model
	width   int
	current string
	status  string
}

func NewModel(opts Options) *Model {
	cat := opts.Catalog
	if cat == nil {
		cat = questionnaire.Default()
	}
	timeout := opts.SubmitTimeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 1000
	ta.SetHeight(3)
	ta.SetWidth(60)

	return &Model{
		store:     wizard.NewStore(cat, opts.Log),
		submitter: opts.Submitter,
		timeout:   timeout,
		sample:    opts.Sample,
		input:     ta,
		spin:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:     80,
	}
}

func (m *Model) Store() *wizard.Store { return m.store }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 4; w > 20 {
			m.input.SetWidth(w)
		}
		return m, nil
	case submitDoneMsg:
		return m, m.dispatch(msg.event)
	case spinner.TickMsg:
		if m.store.State().Phase != wizard.PhaseLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}
	st := m.store.State()
	switch st.Phase {
	case wizard.PhaseLanding:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Start):
			return m, m.dispatch(wizard.Start())
		}
	case wizard.PhaseQuestionnaire:
		if st.Editing {
			return m, m.handleEditKey(msg)
		}
		return m.handleQuestionKey(msg, st)
	case wizard.PhaseResults:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Reveal):
			return m, m.dispatch(wizard.Reveal(int(msg.String()[0] - '1')))
		case key.Matches(msg, keys.RevealAll):
			return m, m.dispatch(wizard.RevealAll())
		case key.Matches(msg, keys.Reset):
			return m, m.dispatch(wizard.Reset())
		}
	case wizard.PhaseError:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Retry):
			return m, m.dispatch(wizard.Retry())
		}
	}
	return m, nil
}

func (m *Model) handleQuestionKey(msg tea.KeyMsg, st wizard.State) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Edit):
		cmd := m.dispatch(wizard.BeginEdit())
		return m, tea.Batch(cmd, m.input.Focus())
	case key.Matches(msg, keys.Next):
		return m, m.dispatch(wizard.Next())
	case key.Matches(msg, keys.Prev):
		return m, m.dispatch(wizard.Prev())
	case key.Matches(msg, keys.Submit):
		return m, m.dispatch(wizard.Submit())
	case key.Matches(msg, keys.Sample) && m.sample != nil:
		return m, m.fillSample()
	}
	if k, ok := wizardKeys[msg.String()]; ok {
		return m, m.dispatch(wizard.Key(k))
	}
	return m, nil
}

func (m *Model) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.EndEdit) {
		m.input.Blur()
		return m.dispatch(wizard.EndEdit())
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		return tea.Batch(cmd, m.dispatch(wizard.TextInput(m.current, after)))
	}
	return cmd
}

// fillSample answers every question and submits.
func (m *Model) fillSample() tea.Cmd {
	cat := m.store.Catalog()
	for _, id := range cat.IDs() {
		if text, ok := m.sample[id]; ok {
			m.dispatch(wizard.TextInput(id, text))
		}
	}
	for i := m.store.State().Index; i < cat.Len()-1; i++ {
		m.dispatch(wizard.Next())
	}
	return m.dispatch(wizard.Submit())
}

// dispatch applies e and starts the submission when the wizard enters loading.
func (m *Model) dispatch(e wizard.Event) tea.Cmd {
	before := m.store.State().Phase
	next, err := m.store.Dispatch(e)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.syncInput(next)
	if before != wizard.PhaseLoading && next.Phase == wizard.PhaseLoading {
		return tea.Batch(m.spin.Tick, m.submit(next.Answers))
	}
	return nil
}

// syncInput keeps the text field on the active question's answer while the
// user is not typing in it.
func (m *Model) syncInput(st wizard.State) {
	q, ok := m.store.Catalog().At(st.Index)
	if !ok || st.Phase != wizard.PhaseQuestionnaire {
		m.current = ""
		m.input.Blur()
		return
	}
	if q.ID != m.current {
		m.current = q.ID
		m.input.Placeholder = q.Placeholder
	}
	if !st.Editing {
		m.input.Blur()
		m.input.SetValue(st.Answers[q.ID])
	}
}

func (m *Model) submit(answers map[string]string) tea.Cmd {
	submitter := m.submitter
	timeout := m.timeout
	return func() tea.Msg {
		if submitter == nil {
			return submitDoneMsg{event: wizard.SubmitFailed(nil)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submitDoneMsg{event: submitter.Complete(ctx, answers)}
	}
}
