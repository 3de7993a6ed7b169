package dataset

import (
	"cmp"
	"encoding/json"
	"slices"

	"github.com/abhisek/querygen/internal/datagen"
)

// ValueCount pairs a distinct value with how often it occurs.
type ValueCount struct {
	Value string
	Count int
}

// Stats is a sanity summary of a dataset read back from disk.
type Stats struct {
	Total          int
	DistinctInputs int
	Instructions   []ValueCount

	// Fields counts the top-level keys of every output that parses as a
	// JSON object.
	Fields []ValueCount

	// InvalidOutputs holds the 1-based positions of records whose output
	// is not a JSON object.
	InvalidOutputs []int
}

// Inspect summarizes records.
func Inspect(records []datagen.Record) Stats {
	st := Stats{Total: len(records)}
	instructions := make(map[string]int)
	fields := make(map[string]int)
	inputs := make(map[string]struct{})

	for i, rec := range records {
		instructions[rec.Instruction]++
		inputs[rec.Input] = struct{}{}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal([]byte(rec.Output), &obj); err != nil || obj == nil {
			st.InvalidOutputs = append(st.InvalidOutputs, i+1)
			continue
		}
		for k := range obj {
			fields[k]++
		}
	}

	st.DistinctInputs = len(inputs)
	st.Instructions = sortedCounts(instructions)
	st.Fields = sortedCounts(fields)
	return st
}

// sortedCounts orders by descending count, then by value.
func sortedCounts(m map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(m))
	for v, n := range m {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}
