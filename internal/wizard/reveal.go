package wizard

import (
	"fmt"
	"sort"
)

func IsRevealed(s State, i int) bool {
	for _, r := range s.Revealed {
		if r == i {
			return true
		}
	}
	return false
}

func AllRevealed(s State) bool {
	return len(s.Gifts) > 0 && len(s.Revealed) == len(s.Gifts)
}

func reveal(s State, i int) (State, error) {
	if s.Phase != PhaseResults {
		return s, nil
	}
	if i < 0 || i >= len(s.Gifts) {
		return s, fmt.Errorf("%w: card %d of %d", ErrOutOfRange, i, len(s.Gifts))
	}
	if IsRevealed(s, i) {
		return s, nil
	}
	next := s.Clone()
	next.Revealed = append(next.Revealed, i)
	sort.Ints(next.Revealed)
	return next, nil
}

func revealAll(s State) State {
	if s.Phase != PhaseResults || AllRevealed(s) {
		return s
	}
	next := s.Clone()
	next.Revealed = make([]int, len(s.Gifts))
	for i := range s.Gifts {
		next.Revealed[i] = i
	}
	return next
}
