package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start      key.Binding
	Edit       key.Binding
	EndEdit    key.Binding
	Next       key.Binding
	Prev       key.Binding
	Submit     key.Binding
	Sample     key.Binding
	Reveal     key.Binding
	RevealAll  key.Binding
	Reset      key.Binding
	Retry      key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	ChipKeys   key.Binding
	ToggleChip key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "start"),
	),
	Edit: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "type answer"),
	),
	EndEdit: key.NewBinding(
		key.WithKeys("tab", "esc"),
		key.WithHelp("tab/esc", "done typing"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "ctrl+n"),
		key.WithHelp("n", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "ctrl+p"),
		key.WithHelp("p", "back"),
	),
	Submit: key.NewBinding(
		key.WithKeys("s", "ctrl+s"),
		key.WithHelp("s", "get ideas"),
	),
	Sample: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "sample answers"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "reveal"),
	),
	RevealAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "reveal all"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "start over"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r", "enter"),
		key.WithHelp("r", "try again"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
	ChipKeys: key.NewBinding(
		key.WithKeys("up", "down", "left", "right", "home", "end", "esc"),
		key.WithHelp("←↑↓→", "move"),
	),
	ToggleChip: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("space", "toggle"),
	),
}

// wizardKeys maps terminal key names onto the keys the wizard understands.
var wizardKeys = map[string]string{
	"up":    "ArrowUp",
	"down":  "ArrowDown",
	"left":  "ArrowLeft",
	"right": "ArrowRight",
	"home":  "Home",
	"end":   "End",
	"enter": "Enter",
	" ":     " ",
	"esc":   "Escape",
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if i > 0 && out != "" {
			out += " • "
		}
		out += h.Key + " " + h.Desc
	}
	return out
}
