package datagen

import (
	"strconv"

	"github.com/abhisek/querygen/internal/catalog"
	"github.com/abhisek/querygen/internal/slot"
)

// Record is one training example. Only the three instruction fields are
// serialized; Template records which template produced it.
type Record struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`

	Template string `json:"-"`
}

// Generator fills catalog templates with randomly drawn values.
// It is not safe for concurrent use unless the Rand is.
type Generator struct {
	catalog *catalog.Catalog
	rnd     Rand
}

// New returns a Generator drawing from c with randomness from r.
func New(c *catalog.Catalog, r Rand) *Generator {
	return &Generator{catalog: c, rnd: r}
}

// Draw samples a fresh value for every recognized placeholder, whether or
// not the template being filled uses it. Values are drawn in slot.Names
// order.
func (g *Generator) Draw() slot.Binding {
	v := g.catalog.Vocabulary
	b := make(slot.Binding, len(slot.Names()))
	for _, name := range slot.Names() {
		switch name {
		case slot.Status:
			b[name] = pickOne(g.rnd, v.Statuses)
		case slot.Priority:
			b[name] = pickOne(g.rnd, v.Priorities)
		case slot.User:
			b[name] = pickOne(g.rnd, v.Users)
		case slot.User1:
			b[name] = pickOne(g.rnd, v.FirstUsers())
		case slot.User2:
			b[name] = pickOne(g.rnd, v.SecondUsers())
		case slot.Tag:
			b[name] = pickOne(g.rnd, v.Tags)
		case slot.Keyword:
			b[name] = pickOne(g.rnd, v.Keywords)
		case slot.Count:
			b[name] = strconv.Itoa(pickOne(g.rnd, v.Counts))
		}
	}
	return b
}

// GenerateExample picks one of t's phrasings, draws a binding and renders
// it into both the phrasing and the query.
func (g *Generator) GenerateExample(t catalog.Template) Record {
	question := pickOne(g.rnd, t.Questions)
	b := g.Draw()
	return Record{
		Instruction: g.catalog.Instruction,
		Input:       question.Render(b),
		Output:      t.Query.Render(b),
		Template:    t.Name,
	}
}

// GenerateDataset returns n records, each from a uniformly chosen
// template, in generation order. n <= 0 yields an empty slice.
func (g *Generator) GenerateDataset(n int) []Record {
	if n <= 0 {
		return []Record{}
	}
	records := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		t := pickOne(g.rnd, g.catalog.Templates)
		records = append(records, g.GenerateExample(t))
	}
	return records
}
