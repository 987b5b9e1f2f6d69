package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectProject(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		wantName    string
		wantVersion string
	}{
		{
			name:        "pyproject",
			files:       map[string]string{"pyproject.toml": "[project]\nname = \"billing-service\"\nversion = \"1.4.0\"\n"},
			wantName:    "billing-service",
			wantVersion: "1.4.0",
		},
		{
			name:        "poetry",
			files:       map[string]string{"pyproject.toml": "[tool.poetry]\nname = \"legacy-app\"\nversion = \"0.3.1\"\n"},
			wantName:    "legacy-app",
			wantVersion: "0.3.1",
		},
		{
			name:        "package.json",
			files:       map[string]string{"package.json": `{"name": "@acme/web", "version": "2.0.0"}`},
			wantName:    "@acme/web",
			wantVersion: "2.0.0",
		},
		{
			name: "pyproject wins",
			files: map[string]string{
				"pyproject.toml": "[project]\nname = \"api\"\n",
				"package.json":   `{"name": "frontend"}`,
			},
			wantName: "api",
		},
		{
			name:     "malformed manifests fall back",
			files:    map[string]string{"pyproject.toml": "[project\nname=", "package.json": "{"},
			wantName: "repo",
		},
		{
			name:     "no manifest",
			wantName: "repo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "repo")
			if err := os.Mkdir(root, 0755); err != nil {
				t.Fatal(err)
			}
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			p := DetectProject(root)
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if p.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", p.Version, tt.wantVersion)
			}
			if (p.Manifest == "") != (len(tt.files) == 0 || tt.wantName == "repo") {
				t.Errorf("Manifest = %q", p.Manifest)
			}
		})
	}
}
