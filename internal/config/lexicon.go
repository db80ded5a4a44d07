package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/resumatch/internal/domain/skill"
)

type lexiconFile struct {
	Skills []string `yaml:"skills"`
	Roles  []struct {
		Role   string   `yaml:"role"`
		Skills []string `yaml:"skills"`
	} `yaml:"roles"`
	Titles         []string `yaml:"titles"`
	Certifications []string `yaml:"certifications"`
}

// LoadLexiconOverrides reads a YAML lexicon extension file.
func LoadLexiconOverrides(path string) (skill.Overrides, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return skill.Overrides{}, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	return ParseLexiconOverrides(data)
}

// ParseLexiconOverrides decodes a lexicon extension document.
func ParseLexiconOverrides(data []byte) (skill.Overrides, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return skill.Overrides{}, fmt.Errorf("parse lexicon: %w", err)
	}

	o := skill.Overrides{
		Skills:         f.Skills,
		Titles:         f.Titles,
		Certifications: f.Certifications,
	}
	for i, r := range f.Roles {
		if r.Role == "" {
			return skill.Overrides{}, fmt.Errorf("lexicon roles[%d]: role is required", i)
		}
		o.Roles = append(o.Roles, skill.RoleProfile{Role: r.Role, Skills: r.Skills})
	}
	return o, nil
}
