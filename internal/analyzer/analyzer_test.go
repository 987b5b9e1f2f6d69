package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/imyousuf/CodeGauge/internal/errlog"
	"github.com/imyousuf/CodeGauge/internal/metrics"
)

// fakeRunner returns canned outputs keyed by "name arg1 arg2 ...".
type fakeRunner struct {
	outputs map[string]*Output
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]*Output{}, errs: map[string]error{}}
}

func (f *fakeRunner) set(cmdline string, out *Output) { f.outputs[cmdline] = out }

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*Output, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if out, ok := f.outputs[key]; ok {
		return out, nil
	}
	return nil, errors.New("unexpected command: " + key)
}

func radonJSON(t *testing.T, path, payload string) []byte {
	t.Helper()
	key, err := json.Marshal(path)
	if err != nil {
		t.Fatal(err)
	}
	return []byte("{" + string(key) + ": " + payload + "}")
}

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func logEntries(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return strings.Count(string(data), "File: ")
}

func quietAdapter(cfg Config) *Adapter {
	cfg.Logger = func(string, ...any) {}
	return NewAdapter(cfg)
}

const tenLines = "a = 1\nb = 2\nc = 3\nd = 4\ne = 5\nf = 6\ng = 7\nh = 8\ni = 9\nj = 10\n"

func setRadon(t *testing.T, r *fakeRunner, path string, cc, hal, raw string) {
	r.set("radon cc -j "+path, &Output{Stdout: radonJSON(t, path, cc)})
	r.set("radon hal -j "+path, &Output{Stdout: radonJSON(t, path, hal)})
	r.set("radon raw -j "+path, &Output{Stdout: radonJSON(t, path, raw)})
}

func TestAdapterRadonSuccess(t *testing.T) {
	path := writeSource(t, "mod.py", tenLines)
	r := newFakeRunner()
	setRadon(t, r, path,
		`[{"type":"function","name":"f","complexity":2},{"type":"method","name":"g","complexity":4}]`,
		`{"total":{"h1":3,"h2":5,"N1":6,"N2":9,"vocabulary":8,"length":15,"calculated_length":16.3,"volume":50,"difficulty":2.7,"effort":135,"time":7.5,"bugs":0.01},"functions":{}}`,
		`{"loc":10,"lloc":10,"sloc":10,"comments":2,"multi":0,"blank":0,"single_comments":2}`,
	)

	logPath := filepath.Join(t.TempDir(), "errors.log")
	a := quietAdapter(Config{
		Complexity: map[metrics.Language]ComplexityAnalyzer{metrics.LangPython: NewRadon(r, "")},
		ErrorLog:   errlog.New(logPath),
	})
	m := a.Analyze(context.Background(), path)

	if m.ComplexityAvg != 3 || m.ComplexityMax != 4 || m.ComplexityBlocks != 2 {
		t.Errorf("complexity = %v/%v/%d, want 3/4/2", m.ComplexityAvg, m.ComplexityMax, m.ComplexityBlocks)
	}
	if m.DistinctOperators != 3 || m.DistinctOperands != 5 {
		t.Errorf("distinct operators/operands = %d/%d, want 3/5", m.DistinctOperators, m.DistinctOperands)
	}
	if m.HalsteadVocabulary != 8 || m.HalsteadLength != 15 || m.HalsteadVolume != 50 {
		t.Errorf("halstead = %d/%d/%v", m.HalsteadVocabulary, m.HalsteadLength, m.HalsteadVolume)
	}
	if m.HalsteadEffort != 135 || m.HalsteadDifficulty != 2.7 {
		t.Errorf("effort/difficulty = %v/%v", m.HalsteadEffort, m.HalsteadDifficulty)
	}
	if m.LinesOfCode != 10 || m.Comments != 2 {
		t.Errorf("loc/comments = %d/%d, want 10/2", m.LinesOfCode, m.Comments)
	}
	// 171 - 5.2*10 - 0.23*50 - 16.2*3 = 58.9
	if math.Abs(m.Maintainability-58.9) > 1e-9 {
		t.Errorf("Maintainability = %v, want 58.9", m.Maintainability)
	}
	if n := logEntries(t, logPath); n != 0 {
		t.Errorf("error log entries = %d, want 0", n)
	}
}

func TestRadonLegacyHalsteadList(t *testing.T) {
	path := writeSource(t, "mod.py", tenLines)
	r := newFakeRunner()
	setRadon(t, r, path,
		`[]`,
		`{"total":[2,3,4,6,5,10,6.75,23.2,2.0,46.4,2.5,0.007],"functions":[]}`,
		`{"loc":10,"comments":0}`,
	)
	c, err := NewRadon(r, "").Analyze(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if c.DistinctOperators != 2 || c.DistinctOperands != 3 || c.Vocabulary != 5 || c.Length != 10 {
		t.Errorf("halstead counts = %+v", c)
	}
	if c.Volume != 23.2 || c.Difficulty != 2 || c.Effort != 46.4 {
		t.Errorf("halstead derived = %v/%v/%v", c.Volume, c.Difficulty, c.Effort)
	}
	if len(c.Scores) != 0 {
		t.Errorf("Scores = %v, want none", c.Scores)
	}
}

func TestAdapterNoBlocksDefaultsMaintainability(t *testing.T) {
	path := writeSource(t, "data.py", strings.Repeat("X = [1, 2, 3]\n", 200))
	r := newFakeRunner()
	setRadon(t, r, path, `[]`,
		`{"total":{"h1":0,"h2":0,"N1":0,"N2":0,"vocabulary":0,"length":0,"volume":0,"difficulty":0,"effort":0}}`,
		`{"loc":200,"comments":0}`,
	)
	a := quietAdapter(Config{
		Complexity: map[metrics.Language]ComplexityAnalyzer{metrics.LangPython: NewRadon(r, "")},
	})
	m := a.Analyze(context.Background(), path)
	if m.Maintainability != 100 {
		t.Errorf("Maintainability = %v, want 100 for a file without blocks", m.Maintainability)
	}
	if m.LinesOfCode != 200 {
		t.Errorf("LinesOfCode = %d, want 200", m.LinesOfCode)
	}
}

func TestAdapterToolFailuresDefaultAndLog(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(r *fakeRunner, path string)
		wantErr error
	}{
		{
			name: "missing executable",
			setup: func(r *fakeRunner, path string) {
				r.errs["radon cc -j "+path] = ErrToolNotFound
			},
			wantErr: ErrToolNotFound,
		},
		{
			name: "non-zero exit",
			setup: func(r *fakeRunner, path string) {
				r.set("radon cc -j "+path, &Output{ExitCode: 2, Stderr: []byte("usage")})
			},
			wantErr: ErrNonZeroExit,
		},
		{
			name: "empty output",
			setup: func(r *fakeRunner, path string) {
				r.set("radon cc -j "+path, &Output{Stdout: []byte("  \n")})
			},
			wantErr: ErrEmptyOutput,
		},
		{
			name: "malformed json",
			setup: func(r *fakeRunner, path string) {
				r.set("radon cc -j "+path, &Output{Stdout: []byte("{not json")})
			},
			wantErr: ErrMalformedOutput,
		},
		{
			name: "per-file error payload",
			setup: func(r *fakeRunner, path string) {
				key, _ := json.Marshal(path)
				r.set("radon cc -j "+path, &Output{Stdout: []byte("{" + string(key) + `: {"error": "invalid syntax (<unknown>, line 3)"}}`)})
			},
			wantErr: ErrMalformedOutput,
		},
		{
			name: "timeout",
			setup: func(r *fakeRunner, path string) {
				r.errs["radon cc -j "+path] = ErrTimeout
			},
			wantErr: ErrTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, "broken.py", tenLines)
			r := newFakeRunner()
			tt.setup(r, path)

			logPath := filepath.Join(t.TempDir(), "errors.log")
			rad := NewRadon(r, "")
			_, err := rad.Analyze(context.Background(), path, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
			var ie *InvocationError
			if !errors.As(err, &ie) || ie.File != path {
				t.Errorf("error %v should be an InvocationError for %s", err, path)
			}

			a := quietAdapter(Config{
				Complexity: map[metrics.Language]ComplexityAnalyzer{metrics.LangPython: rad},
				ErrorLog:   errlog.New(logPath),
			})
			m := a.Analyze(context.Background(), path)

			want := metrics.Default(path, metrics.LangPython)
			if m.FilePath != want.FilePath || m.Maintainability != 100 {
				t.Errorf("record = %+v, want defaults", m)
			}
			for _, v := range m.Values() {
				if v.Name != "Maintainability Index" && v.Value != 0 {
					t.Errorf("%s = %v, want 0", v.Name, v.Value)
				}
			}
			if n := logEntries(t, logPath); n != 1 {
				t.Errorf("error log entries = %d, want 1", n)
			}
		})
	}
}

func TestAdapterUnreadableFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "errors.log")
	a := quietAdapter(Config{
		Complexity: map[metrics.Language]ComplexityAnalyzer{metrics.LangPython: NewBuiltin()},
		ErrorLog:   errlog.New(logPath),
	})
	missing := filepath.Join(t.TempDir(), "gone.py")
	m := a.Analyze(context.Background(), missing)
	if m.FilePath != missing || m.Maintainability != 100 || m.ComplexityBlocks != 0 {
		t.Errorf("record = %+v, want defaults", m)
	}
	if n := logEntries(t, logPath); n != 1 {
		t.Errorf("error log entries = %d, want 1", n)
	}
}

func TestAdapterLinterFailureKeepsComplexity(t *testing.T) {
	path := writeSource(t, "mod.py", "def f(x):\n    if x:\n        return 1\n    return 0\n")
	r := newFakeRunner()
	r.errs["pylint --output-format=json2 --score=y "+path] = ErrToolNotFound

	logPath := filepath.Join(t.TempDir(), "errors.log")
	a := quietAdapter(Config{
		Complexity: map[metrics.Language]ComplexityAnalyzer{metrics.LangPython: NewBuiltin()},
		Linters:    map[metrics.Language]Linter{metrics.LangPython: NewPylint(r, "")},
		ErrorLog:   errlog.New(logPath),
	})
	m := a.Analyze(context.Background(), path)
	if m.ComplexityMax != 2 {
		t.Errorf("ComplexityMax = %v, want 2", m.ComplexityMax)
	}
	if m.LintScore != 0 || m.LintIssues != 0 {
		t.Errorf("lint fields = %v/%d, want defaults", m.LintScore, m.LintIssues)
	}
	if n := logEntries(t, logPath); n != 1 {
		t.Errorf("error log entries = %d, want 1", n)
	}
}

func TestAdapterUnknownLanguageGetsDefaults(t *testing.T) {
	path := writeSource(t, "notes.txt", "hello\n")
	a := quietAdapter(Config{})
	m := a.Analyze(context.Background(), path)
	if m.Language != metrics.LangUnknown || m.Maintainability != 100 {
		t.Errorf("record = %+v", m)
	}
}

func TestInvocationErrorMessage(t *testing.T) {
	err := invocationError("eslint", "a.js", ErrNonZeroExit, &Output{Stderr: []byte("Oops! Something went wrong\n")})
	want := "eslint failed on a.js: non-zero exit status\nstderr: Oops! Something went wrong"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
