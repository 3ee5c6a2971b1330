package wizard

import (
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

func indexFold(labels []string, label string) int {
	for i, l := range labels {
		if strings.EqualFold(l, label) {
			return i
		}
	}
	return -1
}

// toggleSelection flips label in selected. Labels that are not options of q are
// ignored and reported with ok=false.
func toggleSelection(q questionnaire.Question, selected []string, label string) (out []string, ok bool) {
	canonical, known := q.CanonicalLabel(label)
	if !known {
		return selected, false
	}
	out = make([]string, 0, len(selected)+1)
	if i := indexFold(selected, canonical); i >= 0 {
		out = append(out, selected[:i]...)
		out = append(out, selected[i+1:]...)
		return out, true
	}
	out = append(out, selected...)
	out = append(out, canonical)
	return out, true
}

// selectionFromText keeps the fragments of text that name an option of q,
// canonical-cased and deduplicated in text order.
func selectionFromText(q questionnaire.Question, text string) []string {
	out := []string{}
	for _, frag := range splitFragments(text) {
		label, ok := q.CanonicalLabel(frag)
		if !ok || indexFold(out, label) >= 0 {
			continue
		}
		out = append(out, label)
	}
	return out
}
