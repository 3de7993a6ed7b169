package datagen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/querygen/internal/catalog"
	"github.com/abhisek/querygen/internal/slot"
)

// seqRand replays a fixed sequence of draws, each reduced modulo n.
type seqRand struct {
	values []int
	next   int
}

func (s *seqRand) Intn(n int) int {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v % n
}

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func lookup(t *testing.T, c *catalog.Catalog, name string) catalog.Template {
	t.Helper()
	tmpl, ok := c.Lookup(name)
	require.True(t, ok, "template %q", name)
	return tmpl
}

func TestGenerateExampleStatus(t *testing.T) {
	c := defaultCatalog(t)
	// Phrasing 0, then status "open" and zeros for the remaining draws.
	g := New(c, &seqRand{values: []int{0}})

	rec := g.GenerateExample(lookup(t, c, "status"))
	assert.Equal(t, "Convert the following question to a MongoDB query", rec.Instruction)
	assert.Equal(t, "Show me all open tickets", rec.Input)
	assert.Equal(t, `{"status": "open"}`, rec.Output)
	assert.Equal(t, "status", rec.Template)
}

func TestGenerateExampleCommentCount(t *testing.T) {
	c := defaultCatalog(t)
	// Phrasing 0; status, priority, user, user1, user2, tag, keyword; count index 1 (5).
	g := New(c, &seqRand{values: []int{0, 0, 0, 0, 0, 0, 0, 0, 1}})

	rec := g.GenerateExample(lookup(t, c, "comment-count"))
	assert.Equal(t, "Show me tickets with more than 5 comments", rec.Input)
	assert.Equal(t, `{"commentCount": {"$gt": 5}}`, rec.Output)

	var parsed map[string]map[string]int
	require.NoError(t, json.Unmarshal([]byte(rec.Output), &parsed))
	assert.Equal(t, 5, parsed["commentCount"]["$gt"])
}

func TestGenerateExampleSharesBinding(t *testing.T) {
	c := defaultCatalog(t)
	tmpl := lookup(t, c, "status-assignee")
	g := New(c, &seqRand{values: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}})

	for i := 0; i < 50; i++ {
		rec := g.GenerateExample(tmpl)
		var q struct {
			Status   string `json:"status"`
			Assignee string `json:"assignee"`
		}
		require.NoError(t, json.Unmarshal([]byte(rec.Output), &q))
		assert.Contains(t, rec.Input, q.Status)
		assert.Contains(t, rec.Input, q.Assignee)
	}
}

func TestDrawUsesEveryPlaceholder(t *testing.T) {
	c := defaultCatalog(t)
	g := New(c, &seqRand{values: []int{0, 1, 2, 3, 4, 5, 6, 7}})

	b := g.Draw()
	require.Len(t, b, len(slot.Names()))
	assert.Equal(t, slot.Binding{
		slot.Status:   "open",
		slot.Priority: "medium",
		slot.User:     "Mike",
		slot.User1:    "Emily",
		slot.User2:    "David", // 4 % 4 == 0 in the second pool
		slot.Tag:      "security",
		slot.Keyword:  "payment", // 6 % 5
		slot.Count:    "15",
	}, b)
}

func TestUserPoolsAreDisjoint(t *testing.T) {
	c := defaultCatalog(t)
	tmpl := lookup(t, c, "assignee-either")
	r, _ := NewRand(7)
	g := New(c, r)

	first := c.Vocabulary.FirstUsers()
	second := c.Vocabulary.SecondUsers()

	for i := 0; i < 500; i++ {
		rec := g.GenerateExample(tmpl)
		var q struct {
			Assignee struct {
				In []string `json:"$in"`
			} `json:"assignee"`
		}
		require.NoError(t, json.Unmarshal([]byte(rec.Output), &q), rec.Output)
		require.Len(t, q.Assignee.In, 2)
		assert.Contains(t, first, q.Assignee.In[0])
		assert.Contains(t, second, q.Assignee.In[1])
	}
}

func TestGenerateDatasetLength(t *testing.T) {
	c := defaultCatalog(t)
	r, _ := NewRand(42)
	g := New(c, r)

	for _, n := range []int{0, 1, 17, 250} {
		records := g.GenerateDataset(n)
		assert.Len(t, records, n)
		assert.NotNil(t, records)
	}
	assert.Empty(t, g.GenerateDataset(-3))
}

func TestGenerateDatasetInvariants(t *testing.T) {
	c := defaultCatalog(t)
	r, _ := NewRand(1234)
	g := New(c, r)

	for _, rec := range g.GenerateDataset(1000) {
		assert.Equal(t, c.Instruction, rec.Instruction)
		for _, name := range slot.Names() {
			assert.NotContains(t, rec.Input, name.Marker())
			assert.NotContains(t, rec.Output, name.Marker())
		}
		assert.True(t, json.Valid([]byte(rec.Output)), rec.Output)
		assert.False(t, strings.TrimSpace(rec.Input) == "")
	}
}

func TestGenerateDatasetSameSeedSameOutput(t *testing.T) {
	c := defaultCatalog(t)
	r1, seed := NewRand(99)
	r2, _ := NewRand(seed)

	assert.Equal(t, New(c, r1).GenerateDataset(40), New(c, r2).GenerateDataset(40))
}

func TestNewRandZeroSeedIsReplaced(t *testing.T) {
	_, seed := NewRand(0)
	assert.NotZero(t, seed)
}
