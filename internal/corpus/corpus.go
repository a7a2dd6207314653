// Package corpus loads the curated legal-guide files and flattens them into
// passages for ingestion into the vector store.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Guide is one curated legal-aid guide covering a common situation.
type Guide struct {
	SituationID    string     `yaml:"situation_id"`
	Title          string     `yaml:"title"`
	Category       string     `yaml:"category"`
	ProblemSummary string     `yaml:"problem_summary"`
	Steps          []Step     `yaml:"step_by_step_procedure"`
	Documents      []Document `yaml:"documents_required"`
	References     []string   `yaml:"official_references"`
}

type Step struct {
	Step        int    `yaml:"step"`
	Description string `yaml:"description"`
}

type Document struct {
	Name      string `yaml:"name"`
	Mandatory bool   `yaml:"mandatory"`
}

// Passage is one ingestable chunk of guide text with its stable id.
type Passage struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Load reads every .yml/.yaml guide under dir, sorted by file name.
func Load(dir string) ([]Guide, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yml" || ext == ".yaml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var guides []Guide
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}
		var guide Guide
		if err := yaml.Unmarshal(data, &guide); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
		}
		if guide.SituationID == "" {
			return nil, fmt.Errorf("guide %s is missing situation_id", path)
		}
		guides = append(guides, guide)
	}
	return guides, nil
}

// Passages flattens a guide into retrievable chunks: one summary passage and
// one passage per procedural step, each carrying the guide's category.
func Passages(guide Guide) []Passage {
	metadata := map[string]any{
		"situation_id": guide.SituationID,
		"category":     guide.Category,
		"title":        guide.Title,
	}

	var passages []Passage
	summary := strings.TrimSpace(guide.ProblemSummary)
	if summary != "" {
		passages = append(passages, Passage{
			ID:       guide.SituationID + ":summary",
			Text:     fmt.Sprintf("%s: %s", guide.Title, summary),
			Metadata: metadata,
		})
	}

	for _, step := range guide.Steps {
		description := strings.TrimSpace(step.Description)
		if description == "" {
			continue
		}
		passages = append(passages, Passage{
			ID:       fmt.Sprintf("%s:step-%d", guide.SituationID, step.Step),
			Text:     fmt.Sprintf("%s — Step %d: %s", guide.Title, step.Step, description),
			Metadata: metadata,
		})
	}

	if len(guide.Documents) > 0 {
		var docs []string
		for _, doc := range guide.Documents {
			name := strings.TrimSpace(doc.Name)
			if name == "" {
				continue
			}
			if doc.Mandatory {
				name += " (mandatory)"
			}
			docs = append(docs, name)
		}
		if len(docs) > 0 {
			passages = append(passages, Passage{
				ID:       guide.SituationID + ":documents",
				Text:     fmt.Sprintf("%s — Documents required: %s", guide.Title, strings.Join(docs, ", ")),
				Metadata: metadata,
			})
		}
	}
	return passages
}
