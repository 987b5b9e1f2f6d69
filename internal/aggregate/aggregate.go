// Package aggregate reduces per-file metrics into project-level statistics.
package aggregate

import (
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// Entry is one named project-level statistic.
type Entry struct {
	Name     string
	Value    float64
	Integral bool
}

// Summary is an ordered set of project statistics. The zero value is an
// empty summary.
type Summary struct {
	entries []Entry
	index   map[string]int
}

// Len returns the number of statistics.
func (s *Summary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Empty reports whether the summary has no statistics.
func (s *Summary) Empty() bool { return s.Len() == 0 }

// Entries returns the statistics in report order.
func (s *Summary) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get looks up a statistic by name.
func (s *Summary) Get(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[name]
	if !ok {
		return 0, false
	}
	return s.entries[i].Value, true
}

func (s *Summary) add(name string, v float64, integral bool) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Value: v, Integral: integral})
}

// Aggregate computes the project statistics for files. An empty input yields
// an empty summary and an informational message through logf (which may be nil).
func Aggregate(files []metrics.FileMetrics, logf func(format string, args ...any)) *Summary {
	s := &Summary{}
	if len(files) == 0 {
		if logf != nil {
			logf("No metrics to aggregate - no source files were analyzed")
		}
		return s
	}

	n := float64(len(files))
	var (
		ccSum, ccMax               float64
		vocab, length              int
		volume, effort, difficulty float64
		operators, operands        int
		loc, comments              int
		mi, lintScore              float64
		issues, maxIssues          int
	)
	for i, f := range files {
		ccSum += f.ComplexityAvg
		if i == 0 || f.ComplexityMax > ccMax {
			ccMax = f.ComplexityMax
		}
		vocab += f.HalsteadVocabulary
		length += f.HalsteadLength
		volume += f.HalsteadVolume
		effort += f.HalsteadEffort
		difficulty += f.HalsteadDifficulty
		operators += f.DistinctOperators
		operands += f.DistinctOperands
		loc += f.LinesOfCode
		comments += f.Comments
		mi += f.Maintainability
		lintScore += f.LintScore
		issues += f.LintIssues
		if f.LintIssues > maxIssues {
			maxIssues = f.LintIssues
		}
	}

	s.add("Total Files", n, true)
	s.add("Average Cyclomatic Complexity", ccSum/n, false)
	s.add("Maximum Cyclomatic Complexity", ccMax, false)
	s.add("Average Halstead Vocabulary", float64(vocab)/n, false)
	s.add("Average Halstead Length", float64(length)/n, false)
	s.add("Average Halstead Volume", volume/n, false)
	s.add("Average Halstead Effort", effort/n, false)
	s.add("Average Halstead Difficulty", difficulty/n, false)
	s.add("Average Distinct Operators", float64(operators)/n, false)
	s.add("Average Distinct Operands", float64(operands)/n, false)
	s.add("Total Lines of Code", float64(loc), true)
	s.add("Average Lines of Code", float64(loc)/n, false)
	s.add("Total Comments", float64(comments), true)
	s.add("Average Comments", float64(comments)/n, false)
	s.add("Average Maintainability Index", mi/n, false)
	s.add("Average Lint Score", lintScore/n, false)
	s.add("Total Lint Issues", float64(issues), true)
	s.add("Average Lint Issues", float64(issues)/n, false)
	s.add("Maximum Lint Issues", float64(maxIssues), true)
	return s
}
