// Package content loads the read-only collaborator data each lab is
// constructed with: the ordered 10-question bank, the prediction option
// lists for the two predict phases, and the transfer item list. Packs
// are embedded JSON, schema-validated at load.
package content

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/abhisek/simz/internal/quiz"
)

//go:embed packs/*.json
var packFS embed.FS

// PredictionSet is one predict phase's prompt and ordered options.
type PredictionSet struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// packQuestion is the wire form of a question.
type packQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation"`
}

// Pack is a lab's content, immutable after load.
type Pack struct {
	Lab          string                   `json:"lab"`
	Engine       string                   `json:"engine"`
	HookText     string                   `json:"hook"`
	Predictions  map[string]PredictionSet `json:"predictions"`
	Transfer     []string                 `json:"transfer"`
	Questions    []packQuestion           `json:"questions"`
}

// Bank converts the pack's questions into the quiz engine's form.
func (p *Pack) Bank() []quiz.Question {
	bank := make([]quiz.Question, len(p.Questions))
	for i, q := range p.Questions {
		bank[i] = quiz.Question{
			Prompt:       q.Prompt,
			Options:      q.Options,
			CorrectIndex: q.Answer,
			Explanation:  q.Explanation,
		}
	}
	return bank
}

// Prediction returns the prediction set for a predict phase name.
func (p *Pack) Prediction(phaseName string) (PredictionSet, bool) {
	ps, ok := p.Predictions[phaseName]
	return ps, ok
}

// Load reads, validates and returns the embedded pack for a lab.
func Load(labID string) (*Pack, error) {
	raw, err := packFS.ReadFile("packs/" + labID + ".json")
	if err != nil {
		return nil, fmt.Errorf("read pack for %q: %w", labID, err)
	}
	return Parse(labID, raw)
}

// Parse validates raw pack JSON and unmarshals it.
func Parse(labID string, raw []byte) (*Pack, error) {
	if err := validatePack(raw); err != nil {
		return nil, fmt.Errorf("pack %q: %w", labID, err)
	}

	var pack Pack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("unmarshal pack %q: %w", labID, err)
	}

	if pack.Lab != labID {
		return nil, fmt.Errorf("pack %q declares lab %q", labID, pack.Lab)
	}
	if err := CheckEngine(pack.Engine); err != nil {
		return nil, fmt.Errorf("pack %q: %w", labID, err)
	}
	if len(pack.Questions) != quiz.BankSize {
		return nil, fmt.Errorf("pack %q has %d questions, want %d", labID, len(pack.Questions), quiz.BankSize)
	}
	for i, q := range pack.Questions {
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("pack %q question %d: answer index %d out of range", labID, i, q.Answer)
		}
	}

	return &pack, nil
}
