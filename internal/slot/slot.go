package slot

import "slices"

// Name identifies a placeholder that may appear in a question phrasing or
// a query pattern, written as {name}.
type Name string

const (
	Status   Name = "status"
	Priority Name = "priority"
	User     Name = "user"
	User1    Name = "user1"
	User2    Name = "user2"
	Tag      Name = "tag"
	Keyword  Name = "keyword"
	Count    Name = "count"
)

// allNames is the closed set of recognized placeholders in draw order.
var allNames = []Name{Status, Priority, User, User1, User2, Tag, Keyword, Count}

// Names returns every recognized placeholder name in draw order.
func Names() []Name {
	return slices.Clone(allNames)
}

// Known reports whether name is a recognized placeholder.
func Known(name string) bool {
	return slices.Contains(allNames, Name(name))
}

// Marker returns the literal marker text for n, e.g. "{status}".
func (n Name) Marker() string {
	return "{" + string(n) + "}"
}

// Binding maps each placeholder to the value drawn for one example.
// The same binding is rendered into both the question and the query.
type Binding map[Name]string
