package pauwcheck

import (
	"fmt"
	"io"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Outcome is the result of one named check.
type Outcome struct {
	Name   string `yaml:"name"`
	Passed bool   `yaml:"passed"`
	Detail string `yaml:"detail,omitempty"`
}

// Report accumulates outcomes in execution order. Entries are never removed.
type Report struct {
	Started   time.Time
	Finished  time.Time
	ReadySeen bool

	outcomes []Outcome
}

func (r *Report) record(o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns a copy of the recorded outcomes.
func (r *Report) Outcomes() []Outcome {
	return slices.Clone(r.outcomes)
}

// Failed returns the names of failed checks in execution order.
func (r *Report) Failed() []string {
	var names []string
	for _, o := range r.outcomes {
		if !o.Passed {
			names = append(names, o.Name)
		}
	}
	return names
}

// OK reports whether every recorded check passed.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

type reportDocument struct {
	Port      string    `yaml:"port,omitempty"`
	Started   time.Time `yaml:"started"`
	Duration  string    `yaml:"duration"`
	ReadySeen bool      `yaml:"ready_seen"`
	Passed    bool      `yaml:"passed"`
	Outcomes  []Outcome `yaml:"outcomes"`
	Failed    []string  `yaml:"failed,omitempty"`
}

// WriteYAML writes the report as a YAML document.
func (r *Report) WriteYAML(w io.Writer, port string) error {
	doc := reportDocument{
		Port:      port,
		Started:   r.Started,
		Duration:  r.Finished.Sub(r.Started).Round(time.Millisecond).String(),
		ReadySeen: r.ReadySeen,
		Passed:    r.OK(),
		Outcomes:  r.outcomes,
		Failed:    r.Failed(),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
