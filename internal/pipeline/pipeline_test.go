package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/imyousuf/CodeGauge/internal/analyzer"
	"github.com/imyousuf/CodeGauge/internal/errlog"
	"github.com/imyousuf/CodeGauge/internal/metrics"
	"github.com/imyousuf/CodeGauge/internal/report"
	"github.com/imyousuf/CodeGauge/internal/walker"
)

// stubAnalyzer assigns a maintainability index by base name.
type stubAnalyzer struct {
	mi    map[string]float64
	paths []string
}

func (s *stubAnalyzer) Analyze(_ context.Context, path string) metrics.FileMetrics {
	s.paths = append(s.paths, path)
	m := metrics.Default(path, metrics.DetectLanguage(path))
	if v, ok := s.mi[filepath.Base(path)]; ok {
		m.Maintainability = v
	}
	return m
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

type logBuffer struct{ lines []string }

func (l *logBuffer) logf(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *logBuffer) contains(s string) bool {
	for _, line := range l.lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func TestRunExcludesDirectoriesAndAverages(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":            "x = 1\n",
		"b.py":            "y = 2\n",
		"venv/pkg/mod.py": "z = 3\n",
		"README.md":       "# demo\n",
	})
	out := filepath.Join(t.TempDir(), "report.html")
	stub := &stubAnalyzer{mi: map[string]float64{"a.py": 90, "b.py": 40}}
	logs := &logBuffer{}

	p := New(Config{
		Walker:   walker.New([]string{"venv"}, metrics.FileExtensions[metrics.LangPython]),
		Analyzer: stub,
		Format:   report.FormatHTML,
		Output:   out,
		Logger:   logs.logf,
		Now:      func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	res, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(stub.paths) != 2 {
		t.Fatalf("analyzed %v, want a.py and b.py", stub.paths)
	}
	for _, path := range stub.paths {
		if strings.Contains(path, "venv") {
			t.Errorf("analyzed excluded file %s", path)
		}
	}
	if got, _ := res.Summary.Get("Average Maintainability Index"); got != 65 {
		t.Errorf("Average Maintainability Index = %v, want 65", got)
	}
	if got, _ := res.Summary.Get("Total Files"); got != 2 {
		t.Errorf("Total Files = %v, want 2", got)
	}
	if !res.ReportWritten {
		t.Fatal("ReportWritten = false")
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)
	if !strings.Contains(html, "Generated on: 2024-01-02 03:04:05") {
		t.Error("report missing timestamp")
	}
	if !strings.Contains(html, `class="summary good"`) || !strings.Contains(html, `class="summary poor"`) {
		t.Error("report missing good/poor bands")
	}
	if !logs.contains("Analyzing: " + filepath.Join(root, "a.py")) {
		t.Errorf("missing progress line, logs: %v", logs.lines)
	}
}

func TestRunNoMatchingFiles(t *testing.T) {
	root := writeTree(t, map[string]string{"notes.txt": "hello\n"})
	out := filepath.Join(t.TempDir(), "report.html")
	logs := &logBuffer{}

	p := New(Config{
		Walker:   walker.New(nil, []string{".py"}),
		Analyzer: &stubAnalyzer{},
		Output:   out,
		Logger:   logs.logf,
	})
	res, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if res.ReportWritten {
		t.Error("ReportWritten = true for empty tree")
	}
	if !res.Summary.Empty() {
		t.Errorf("summary has %d entries, want 0", res.Summary.Len())
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("report file was created for empty tree")
	}
	if !logs.contains("No matching source files found") {
		t.Errorf("missing empty-input message, logs: %v", logs.lines)
	}
}

func TestRunMissingRoot(t *testing.T) {
	p := New(Config{
		Walker:   walker.New(nil, []string{".py"}),
		Analyzer: &stubAnalyzer{},
		Output:   filepath.Join(t.TempDir(), "r.html"),
		Logger:   func(string, ...any) {},
	})
	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, walker.ErrRoot) {
		t.Errorf("Run() error = %v, want ErrRoot", err)
	}
}

func TestRunCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x = 1\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(Config{
		Walker:   walker.New(nil, []string{".py"}),
		Analyzer: &stubAnalyzer{},
		Output:   filepath.Join(t.TempDir(), "r.html"),
		Logger:   func(string, ...any) {},
	})
	if _, err := p.Run(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunWithBuiltinAnalyzerWritesWordReport(t *testing.T) {
	root := writeTree(t, map[string]string{
		"pkg/calc.py":               "def add(a, b):\n    if a:\n        return a + b\n    return b\n",
		"web/app.js":                "function f(x) { return x ? 1 : 0; }\n",
		"node_modules/lib/index.js": "function g() {}\n",
	})
	errLogPath := filepath.Join(t.TempDir(), "errors.log")
	out := filepath.Join(t.TempDir(), "report.docx")

	b := analyzer.NewBuiltin()
	adapter := analyzer.NewAdapter(analyzer.Config{
		Complexity: map[metrics.Language]analyzer.ComplexityAnalyzer{
			metrics.LangPython:     b,
			metrics.LangJavaScript: b,
		},
		ErrorLog: errlog.New(errLogPath),
		Logger:   func(string, ...any) {},
	})

	var exts []string
	for _, lang := range metrics.Languages() {
		exts = append(exts, metrics.FileExtensions[lang]...)
	}
	p := New(Config{
		Walker:   walker.New([]string{"node_modules"}, exts),
		Analyzer: adapter,
		Format:   report.FormatWord,
		Output:   out,
		Logger:   func(string, ...any) {},
	})
	res, err := p.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("len(Files) = %d, want 2", len(res.Files))
	}
	for _, f := range res.Files {
		if f.ComplexityMax != 2 {
			t.Errorf("%s ComplexityMax = %v, want 2", f.FilePath, f.ComplexityMax)
		}
		if f.Maintainability < 0 || f.Maintainability > 100 {
			t.Errorf("%s Maintainability = %v out of range", f.FilePath, f.Maintainability)
		}
	}
	if !res.ReportWritten {
		t.Error("ReportWritten = false")
	}
	if _, err := os.Stat(errLogPath); !os.IsNotExist(err) {
		t.Error("error log written for a clean run")
	}
}
