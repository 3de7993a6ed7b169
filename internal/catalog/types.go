package catalog

import "github.com/abhisek/querygen/internal/slot"

// Vocabulary holds the value tables placeholders are drawn from.
type Vocabulary struct {
	Statuses   []string `yaml:"status"`
	Priorities []string `yaml:"priority"`
	Users      []string `yaml:"user"`
	Tags       []string `yaml:"tag"`
	Keywords   []string `yaml:"keyword"`
	Counts     []int    `yaml:"count"`

	// UserSplit divides Users into the {user1} pool Users[:UserSplit]
	// and the {user2} pool Users[UserSplit:].
	UserSplit int `yaml:"user_split"`
}

// FirstUsers returns the pool {user1} is drawn from.
func (v Vocabulary) FirstUsers() []string {
	return v.Users[:v.UserSplit]
}

// SecondUsers returns the pool {user2} is drawn from.
func (v Vocabulary) SecondUsers() []string {
	return v.Users[v.UserSplit:]
}

// Template pairs alternative question phrasings with one query pattern.
type Template struct {
	Name      string
	Category  string
	Questions []slot.Pattern
	Query     slot.Pattern
}

// Placeholders returns every placeholder used by the template's phrasings
// or query, in order of first use.
func (t Template) Placeholders() []slot.Name {
	var names []slot.Name
	seen := make(map[slot.Name]bool)
	add := func(p slot.Pattern) {
		for _, n := range p.Placeholders() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	for _, q := range t.Questions {
		add(q)
	}
	add(t.Query)
	return names
}

// Catalog is a validated set of templates and the vocabulary they draw on.
// It is immutable after loading.
type Catalog struct {
	// Instruction is the constant instruction text of every record.
	Instruction string
	Vocabulary  Vocabulary
	Templates   []Template

	// Source describes where the catalog came from: "embedded" or a path.
	Source string
}

// Lookup returns the template with the given name.
func (c *Catalog) Lookup(name string) (Template, bool) {
	for _, t := range c.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return Template{}, false
}

// Categories returns the template category for each template name.
func (c *Catalog) Categories() map[string]string {
	out := make(map[string]string, len(c.Templates))
	for _, t := range c.Templates {
		out[t.Name] = t.Category
	}
	return out
}

// file mirrors the on-disk catalog layout.
type file struct {
	Instruction string         `yaml:"instruction"`
	Vocabulary  Vocabulary     `yaml:"vocabulary"`
	Templates   []templateFile `yaml:"templates"`
}

type templateFile struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"`
	Questions []string `yaml:"questions"`
	Query     string   `yaml:"query"`
}
