package dataset

import (
	"cmp"
	"slices"

	"github.com/abhisek/querygen/internal/datagen"
)

// TemplateCount is the number of records produced from one template.
type TemplateCount struct {
	Template string
	Count    int
}

// Tally counts records per template, sorted by template name. Records
// read back from disk carry no template and are counted under "".
func Tally(records []datagen.Record) []TemplateCount {
	counts := make(map[string]int)
	for _, rec := range records {
		counts[rec.Template]++
	}

	out := make([]TemplateCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, TemplateCount{Template: name, Count: n})
	}
	slices.SortFunc(out, func(a, b TemplateCount) int {
		return cmp.Compare(a.Template, b.Template)
	})
	return out
}
