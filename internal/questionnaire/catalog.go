package questionnaire

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

type Option struct {
	Label string `yaml:"label" json:"label"`
	Icon  string `yaml:"icon" json:"icon"`
}

type Question struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Options     []Option `yaml:"options" json:"options"`
	Required    bool     `yaml:"required" json:"required"`
	Placeholder string   `yaml:"placeholder" json:"placeholder"`
}

// CanonicalLabel returns the option label matching fragment case-insensitively.
func (q Question) CanonicalLabel(fragment string) (string, bool) {
	f := strings.TrimSpace(fragment)
	if f == "" {
		return "", false
	}
	for _, o := range q.Options {
		if strings.EqualFold(o.Label, f) {
			return o.Label, true
		}
	}
	return "", false
}

// Catalog is the immutable, ordered question set. Order is navigation order.
type Catalog struct {
	questions []Question
	byID      map[string]int
}

type document struct {
	Questions []Question `yaml:"questions"`
}

func New(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("questionnaire: no questions")
	}
	c := &Catalog{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[string]int, len(questions)),
	}
	for i, q := range questions {
		q.ID = strings.TrimSpace(q.ID)
		if q.ID == "" {
			return nil, fmt.Errorf("questionnaire: question %d has no id", i)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("questionnaire: duplicate question id %q", q.ID)
		}
		if strings.TrimSpace(q.Title) == "" {
			return nil, fmt.Errorf("questionnaire: question %q has no title", q.ID)
		}
		seen := make(map[string]bool, len(q.Options))
		opts := make([]Option, 0, len(q.Options))
		for _, o := range q.Options {
			o.Label = strings.TrimSpace(o.Label)
			key := strings.ToLower(o.Label)
			if key == "" {
				return nil, fmt.Errorf("questionnaire: question %q has an empty option label", q.ID)
			}
			if strings.Contains(o.Label, ",") {
				return nil, fmt.Errorf("questionnaire: option %q of %q contains a comma", o.Label, q.ID)
			}
			if seen[key] {
				return nil, fmt.Errorf("questionnaire: duplicate option %q in %q", o.Label, q.ID)
			}
			seen[key] = true
			opts = append(opts, o)
		}
		q.Options = opts
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("questionnaire: parse: %w", err)
	}
	return New(doc.Questions)
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("questionnaire: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded question set.
func Default() *Catalog {
	c, err := Parse(defaultQuestions)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Len() int { return len(c.questions) }

func (c *Catalog) At(i int) (Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return Question{}, false
	}
	return c.questions[i], true
}

func (c *Catalog) Lookup(id string) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// IndexOf returns -1 for unknown ids.
func (c *Catalog) IndexOf(id string) int {
	if i, ok := c.byID[id]; ok {
		return i
	}
	return -1
}

func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	copy(out, c.questions)
	return out
}

func (c *Catalog) IDs() []string {
	out := make([]string, len(c.questions))
	for i, q := range c.questions {
		out[i] = q.ID
	}
	return out
}

func (c *Catalog) RequiredIDs() []string {
	var out []string
	for _, q := range c.questions {
		if q.Required {
			out = append(out, q.ID)
		}
	}
	return out
}
