package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Radon runs the radon CLI (cc, hal and raw subcommands) for Python files.
type Radon struct {
	runner     Runner
	executable string
}

// NewRadon creates a Radon analyzer. An empty executable defaults to "radon".
func NewRadon(runner Runner, executable string) *Radon {
	if executable == "" {
		executable = "radon"
	}
	return &Radon{runner: runner, executable: executable}
}

func (r *Radon) Name() string { return "radon" }

// Analyze runs `radon cc -j`, `radon hal -j` and `radon raw -j` on path. A
// failure in any subcommand fails the whole analysis.
func (r *Radon) Analyze(ctx context.Context, path string, _ []byte) (*Complexity, error) {
	c := &Complexity{}

	ccOut, err := r.run(ctx, path, "cc")
	if err != nil {
		return nil, err
	}
	if c.Scores, err = parseRadonCC(ccOut, path); err != nil {
		return nil, invocationError("radon cc", path, err, nil)
	}

	halOut, err := r.run(ctx, path, "hal")
	if err != nil {
		return nil, err
	}
	if err := parseRadonHal(halOut, path, c); err != nil {
		return nil, invocationError("radon hal", path, err, nil)
	}

	rawOut, err := r.run(ctx, path, "raw")
	if err != nil {
		return nil, err
	}
	if err := parseRadonRaw(rawOut, path, c); err != nil {
		return nil, invocationError("radon raw", path, err, nil)
	}

	return c, nil
}

func (r *Radon) run(ctx context.Context, path, sub string) ([]byte, error) {
	tool := "radon " + sub
	out, err := r.runner.Run(ctx, r.executable, sub, "-j", path)
	if err != nil {
		return nil, invocationError(tool, path, err, out)
	}
	if out.ExitCode != 0 {
		return nil, invocationError(tool, path, fmt.Errorf("%w: %d", ErrNonZeroExit, out.ExitCode), out)
	}
	if len(bytes.TrimSpace(out.Stdout)) == 0 {
		return nil, invocationError(tool, path, ErrEmptyOutput, out)
	}
	return out.Stdout, nil
}

// radonEntry picks the per-file payload from radon's {"<path>": ...} output.
// A payload of the form {"error": "..."} is reported as malformed output.
func radonEntry(data []byte, path string) (json.RawMessage, error) {
	var byFile map[string]json.RawMessage
	if err := json.Unmarshal(data, &byFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	entry, ok := byFile[path]
	if !ok {
		if len(byFile) != 1 {
			return nil, fmt.Errorf("%w: no result for %s", ErrMalformedOutput, path)
		}
		for _, v := range byFile {
			entry = v
		}
	}

	var failed struct {
		Error string `json:"error"`
	}
	if trimmed := bytes.TrimSpace(entry); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(entry, &failed); err == nil && failed.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, strings.TrimSpace(failed.Error))
		}
	}
	return entry, nil
}

type radonBlock struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Complexity float64 `json:"complexity"`
}

func parseRadonCC(data []byte, path string) ([]float64, error) {
	entry, err := radonEntry(data, path)
	if err != nil {
		return nil, err
	}
	var blocks []radonBlock
	if err := json.Unmarshal(entry, &blocks); err != nil {
		return nil, fmt.Errorf("%w: cc blocks: %v", ErrMalformedOutput, err)
	}
	scores := make([]float64, 0, len(blocks))
	for _, b := range blocks {
		scores = append(scores, b.Complexity)
	}
	return scores, nil
}

type radonHalstead struct {
	H1         int     `json:"h1"`
	H2         int     `json:"h2"`
	N1         int     `json:"N1"`
	N2         int     `json:"N2"`
	Vocabulary int     `json:"vocabulary"`
	Length     int     `json:"length"`
	Volume     float64 `json:"volume"`
	Difficulty float64 `json:"difficulty"`
	Effort     float64 `json:"effort"`
}

// UnmarshalJSON accepts both the object form and the positional list form
// [h1, h2, N1, N2, vocabulary, length, calculated_length, volume,
// difficulty, effort, time, bugs] emitted by older radon releases.
func (h *radonHalstead) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var vals []float64
		if err := json.Unmarshal(trimmed, &vals); err != nil {
			return err
		}
		if len(vals) < 10 {
			return fmt.Errorf("halstead list has %d values, want at least 10", len(vals))
		}
		*h = radonHalstead{
			H1:         int(vals[0]),
			H2:         int(vals[1]),
			N1:         int(vals[2]),
			N2:         int(vals[3]),
			Vocabulary: int(vals[4]),
			Length:     int(vals[5]),
			Volume:     vals[7],
			Difficulty: vals[8],
			Effort:     vals[9],
		}
		return nil
	}
	type plain radonHalstead
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*h = radonHalstead(p)
	return nil
}

func parseRadonHal(data []byte, path string, c *Complexity) error {
	entry, err := radonEntry(data, path)
	if err != nil {
		return err
	}
	var report struct {
		Total *radonHalstead `json:"total"`
	}
	if err := json.Unmarshal(entry, &report); err != nil {
		return fmt.Errorf("%w: halstead: %v", ErrMalformedOutput, err)
	}
	if report.Total == nil {
		return nil
	}
	t := report.Total
	c.DistinctOperators = t.H1
	c.DistinctOperands = t.H2
	c.TotalOperators = t.N1
	c.TotalOperands = t.N2
	c.Vocabulary = t.Vocabulary
	c.Length = t.Length
	c.Volume = t.Volume
	c.Difficulty = t.Difficulty
	c.Effort = t.Effort
	return nil
}

func parseRadonRaw(data []byte, path string, c *Complexity) error {
	entry, err := radonEntry(data, path)
	if err != nil {
		return err
	}
	var raw struct {
		LOC      int `json:"loc"`
		Comments int `json:"comments"`
	}
	if err := json.Unmarshal(entry, &raw); err != nil {
		return fmt.Errorf("%w: raw: %v", ErrMalformedOutput, err)
	}
	c.LinesOfCode = raw.LOC
	c.Comments = raw.Comments
	return nil
}
