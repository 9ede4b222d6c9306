package executor

import "time"

// Status classifies the result of running one entry.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Outcome records what happened to a single entry.
type Outcome struct {
	Slug     string        `json:"slug" yaml:"slug"`
	Status   Status        `json:"status" yaml:"status"`
	ExitCode int           `json:"exit_code,omitempty" yaml:"exit_code,omitempty"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"` // last clean output line
	Hint     string        `json:"hint,omitempty" yaml:"hint,omitempty"`     // failure diagnostic
	Reason   string        `json:"reason,omitempty" yaml:"reason,omitempty"` // why the entry was skipped
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summary is the result of a batch run. The slug lists keep enumeration
// order.
type Summary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Root      string    `json:"root" yaml:"root"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Passed    []string  `json:"passed" yaml:"passed"`
	Failed    []string  `json:"failed" yaml:"failed"`
	Skipped   []string  `json:"skipped" yaml:"skipped"`
	Outcomes  []Outcome `json:"outcomes" yaml:"outcomes"`
}

// OK reports whether no entry failed. Skipped entries do not count.
func (s *Summary) OK() bool {
	return len(s.Failed) == 0
}

func (s *Summary) add(o Outcome) {
	switch o.Status {
	case StatusPass:
		s.Passed = append(s.Passed, o.Slug)
	case StatusFail:
		s.Failed = append(s.Failed, o.Slug)
	case StatusSkip:
		s.Skipped = append(s.Skipped, o.Slug)
	}
	s.Outcomes = append(s.Outcomes, o)
}
