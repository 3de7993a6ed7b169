package catalog

import (
	"fmt"
	"strings"

	"github.com/abhisek/querygen/internal/slot"
)

// build parses the patterns of f and checks the catalog invariants.
// Returns a combined error describing all problems found.
func build(f file) (*Catalog, error) {
	var errs []string

	vocab := f.Vocabulary
	if vocab.UserSplit == 0 {
		vocab.UserSplit = len(vocab.Users) / 2
	}
	errs = append(errs, validateVocabulary(vocab)...)

	c := &Catalog{
		Instruction: strings.TrimSpace(f.Instruction),
		Vocabulary:  vocab,
	}
	if c.Instruction == "" {
		errs = append(errs, "instruction must not be empty")
	}

	names := make(map[string]bool, len(f.Templates))
	for i, tf := range f.Templates {
		prefix := fmt.Sprintf("template %d (%q)", i, tf.Name)

		if tf.Name == "" {
			errs = append(errs, fmt.Sprintf("%s: name must not be empty", prefix))
		} else if names[tf.Name] {
			errs = append(errs, fmt.Sprintf("duplicate template name: %q", tf.Name))
		}
		names[tf.Name] = true

		t := Template{Name: tf.Name, Category: tf.Category}

		if len(tf.Questions) == 0 {
			errs = append(errs, fmt.Sprintf("%s: at least one question is required", prefix))
		}
		for j, q := range tf.Questions {
			if strings.TrimSpace(q) == "" {
				errs = append(errs, fmt.Sprintf("%s question %d: must not be empty", prefix, j))
				continue
			}
			p, err := slot.Parse(q)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s question %d: %v", prefix, j, err))
				continue
			}
			t.Questions = append(t.Questions, p)
		}

		if strings.TrimSpace(tf.Query) == "" {
			errs = append(errs, fmt.Sprintf("%s: query must not be empty", prefix))
		} else if p, err := slot.Parse(tf.Query); err != nil {
			errs = append(errs, fmt.Sprintf("%s query: %v", prefix, err))
		} else {
			t.Query = p
		}

		c.Templates = append(c.Templates, t)
	}
	if len(f.Templates) == 0 {
		errs = append(errs, "at least one template is required")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return c, nil
}

// validateVocabulary checks that every table can be drawn from and that
// the two user pools are non-empty and disjoint.
func validateVocabulary(v Vocabulary) []string {
	var errs []string

	tables := []struct {
		name   string
		values []string
	}{
		{"status", v.Statuses},
		{"priority", v.Priorities},
		{"user", v.Users},
		{"tag", v.Tags},
		{"keyword", v.Keywords},
	}
	for _, tb := range tables {
		if len(tb.values) == 0 {
			errs = append(errs, fmt.Sprintf("vocabulary %q must not be empty", tb.name))
		}
	}
	if len(v.Counts) == 0 {
		errs = append(errs, `vocabulary "count" must not be empty`)
	}

	if len(v.Users) > 0 && (v.UserSplit <= 0 || v.UserSplit >= len(v.Users)) {
		errs = append(errs, fmt.Sprintf("user_split must be in [1, %d], got %d", len(v.Users)-1, v.UserSplit))
	}

	seen := make(map[string]bool, len(v.Users))
	for _, u := range v.Users {
		if seen[u] {
			errs = append(errs, fmt.Sprintf("duplicate user %q: user1 and user2 pools must be disjoint", u))
		}
		seen[u] = true
	}

	return errs
}
