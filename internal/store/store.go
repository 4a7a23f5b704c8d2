// Package store loads the category prototype phrases used by the semantic
// categorizer.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/pdf-expenses/internal/fileutils"
	"fjacquet/pdf-expenses/internal/logging"
	"fjacquet/pdf-expenses/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultPrototypesFile is looked up when no explicit file is configured.
const DefaultPrototypesFile = "prototypes.yaml"

// PrototypeSource supplies the phrase for every category.
type PrototypeSource interface {
	LoadPhrases() (map[models.Category]string, error)
}

// PrototypeStore reads prototype phrase overrides from a YAML file of the form
//
//	prototypes:
//	  - category: food
//	    phrase: restaurant dining meal
//
// Categories missing from the file keep their built-in phrase.
type PrototypeStore struct {
	File   string
	logger logging.Logger
}

// NewPrototypeStore creates a store for the given file. An empty name means
// DefaultPrototypesFile in the standard locations.
func NewPrototypeStore(file string, logger logging.Logger) *PrototypeStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PrototypeStore{File: file, logger: logger}
}

// FindConfigFile looks for filename in the working directory, ./config and
// ~/.config/pdf-expenses.
func FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{filename, filepath.Join("config", filename)}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "pdf-expenses", filename))
	}
	for _, loc := range locations {
		if fileutils.FileExists(loc) {
			return loc, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadPhrases returns the built-in phrases with the file's overrides applied.
// A missing DefaultPrototypesFile is not an error. A missing explicit file,
// an unknown category or an empty phrase is.
func (s *PrototypeStore) LoadPhrases() (map[models.Category]string, error) {
	phrases := models.DefaultPrototypePhrases()

	name := s.File
	if name == "" {
		name = DefaultPrototypesFile
	}
	path, err := FindConfigFile(name)
	if err != nil {
		if s.File != "" {
			return nil, fmt.Errorf("prototypes file %s: %w", s.File, err)
		}
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("No prototypes file, using built-in phrases",
				logging.Field{Key: logging.FieldFile, Value: name})
			return phrases, nil
		}
		return nil, fmt.Errorf("error resolving prototypes file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading prototypes file: %w", err)
	}

	var cfg models.PrototypesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing prototypes file %s: %w", path, err)
	}

	for i, p := range cfg.Prototypes {
		cat := models.Category(strings.ToLower(strings.TrimSpace(p.Category)))
		if !cat.IsValid() {
			return nil, fmt.Errorf("prototypes file %s: entry %d has unknown category %q", path, i, p.Category)
		}
		phrase := strings.TrimSpace(p.Phrase)
		if phrase == "" {
			return nil, fmt.Errorf("prototypes file %s: entry %d (%s) has an empty phrase", path, i, cat)
		}
		phrases[cat] = phrase
	}

	s.logger.Info("Loaded prototype overrides",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(cfg.Prototypes)})
	return phrases, nil
}

// MockPrototypeStore returns fixed phrases or an error.
type MockPrototypeStore struct {
	Phrases map[models.Category]string
	Err     error
}

func (m *MockPrototypeStore) LoadPhrases() (map[models.Category]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Phrases == nil {
		return models.DefaultPrototypePhrases(), nil
	}
	return m.Phrases, nil
}
