package wizard

import (
	"strings"

	"github.com/yungbote/giftwizard-backend/internal/questionnaire"
)

const fragmentSeparator = ", "

func splitFragments(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// customFragments returns the fragments of text that do not name an option.
func customFragments(q questionnaire.Question, text string) []string {
	var out []string
	for _, frag := range splitFragments(text) {
		if _, ok := q.CanonicalLabel(frag); ok {
			continue
		}
		out = append(out, frag)
	}
	return out
}

// rebuildAnswer renders selected labels followed by the custom fragments of
// previous, deduplicated case-insensitively.
func rebuildAnswer(q questionnaire.Question, selected []string, previous string) string {
	parts := make([]string, 0, len(selected))
	add := func(s string) {
		if indexFold(parts, s) < 0 {
			parts = append(parts, s)
		}
	}
	for _, label := range selected {
		add(label)
	}
	for _, frag := range customFragments(q, previous) {
		add(frag)
	}
	return strings.Join(parts, fragmentSeparator)
}
