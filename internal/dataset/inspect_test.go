package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/querygen/internal/datagen"
)

func TestInspect(t *testing.T) {
	const instr = "Convert the following question to a MongoDB query"
	records := []datagen.Record{
		{Instruction: instr, Input: "Show me open tickets", Output: `{"status": "open"}`},
		{Instruction: instr, Input: "Show me open tickets", Output: `{"status": "open"}`},
		{Instruction: instr, Input: "High priority open", Output: `{"status": "open", "priority": "high"}`},
		{Instruction: "other", Input: "broken", Output: `{"status": `},
		{Instruction: instr, Input: "array", Output: `[1, 2]`},
	}

	st := Inspect(records)

	assert.Equal(t, 5, st.Total)
	assert.Equal(t, 4, st.DistinctInputs)
	assert.Equal(t, []ValueCount{{Value: instr, Count: 4}, {Value: "other", Count: 1}}, st.Instructions)
	assert.Equal(t, []ValueCount{{Value: "status", Count: 3}, {Value: "priority", Count: 1}}, st.Fields)
	assert.Equal(t, []int{4, 5}, st.InvalidOutputs)
}

func TestInspectEmpty(t *testing.T) {
	st := Inspect(nil)
	assert.Zero(t, st.Total)
	assert.Empty(t, st.Instructions)
	assert.Empty(t, st.InvalidOutputs)
}
