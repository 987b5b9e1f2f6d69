package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Project describes the analyzed project as declared by its manifest.
type Project struct {
	Name     string
	Version  string
	Manifest string // manifest file the name came from; empty when derived from the directory
}

type pyprojectFile struct {
	Project struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

type packageJSON struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// DetectProject reads the project name from pyproject.toml or package.json in
// root, falling back to the directory's base name. Unreadable or malformed
// manifests are ignored.
func DetectProject(root string) Project {
	if p, ok := readPyproject(filepath.Join(root, "pyproject.toml")); ok {
		return p
	}
	if p, ok := readPackageJSON(filepath.Join(root, "package.json")); ok {
		return p
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	return Project{Name: filepath.Base(abs)}
}

func readPyproject(path string) (Project, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, false
	}
	var pf pyprojectFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return Project{}, false
	}
	name, version := pf.Project.Name, pf.Project.Version
	if name == "" {
		name, version = pf.Tool.Poetry.Name, pf.Tool.Poetry.Version
	}
	if name == "" {
		return Project{}, false
	}
	return Project{Name: name, Version: version, Manifest: path}, true
}

func readPackageJSON(path string) (Project, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, false
	}
	var pj packageJSON
	if err := json.Unmarshal(data, &pj); err != nil || pj.Name == "" {
		return Project{}, false
	}
	return Project{Name: pj.Name, Version: pj.Version, Manifest: path}, true
}
