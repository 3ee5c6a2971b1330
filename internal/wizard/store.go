package wizard

import (
	"errors"
	"sort"
	"sync"

	"github.com/yungbote/giftwizard-backend/internal/platform/logger"
	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

type Listener func(State)

// Store owns one wizard State. Dispatch is serialized; listeners run after the
// new State is in place, outside the lock, in subscription order.
type Store struct {
	mu     sync.Mutex
	cat    *questionnaire.Catalog
	state  State
	log    *logger.Logger
	subs   map[int]Listener
	nextID int
}

func NewStore(cat *questionnaire.Catalog, log *logger.Logger) *Store {
	return NewStoreFrom(cat, NewState(), log)
}

func NewStoreFrom(cat *questionnaire.Catalog, s State, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		cat:   cat,
		state: s.Clone(),
		log:   log.With("component", "WizardStore"),
		subs:  map[int]Listener{},
	}
}

func (st *Store) Catalog() *questionnaire.Catalog { return st.cat }

func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}

func (st *Store) View() View {
	return Project(st.cat, st.State())
}

// Dispatch applies e. Events naming unknown questions, options or indexes are
// logged and skipped; only ErrUnknownEvent is returned to the caller.
func (st *Store) Dispatch(e Event) (State, error) {
	st.mu.Lock()
	prev := st.state
	next, err := Reduce(st.cat, prev, e)
	if err != nil {
		st.mu.Unlock()
		if errors.Is(err, ErrUnknownEvent) {
			return prev.Clone(), err
		}
		st.log.Warn("wizard event skipped", "event", string(e.Type), "error", err.Error())
		return prev.Clone(), nil
	}
	st.state = next
	listeners := st.listeners()
	st.mu.Unlock()

	if prev.Phase != next.Phase {
		st.log.Debug("wizard phase changed", "from", string(prev.Phase), "to", string(next.Phase))
	}
	for _, fn := range listeners {
		fn(next.Clone())
	}
	return next.Clone(), nil
}

// Subscribe registers fn and returns a func that removes it.
func (st *Store) Subscribe(fn Listener) func() {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	st.mu.Unlock()
	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

func (st *Store) listeners() []Listener {
	ids := make([]int, 0, len(st.subs))
	for id := range st.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, st.subs[id])
	}
	return out
}
