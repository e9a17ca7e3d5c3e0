// Package store loads the header alias table that lets the tabular reader
// accept spreadsheet variants of the canonical column names.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/cashflow-classifier/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultAliasesFile is looked up when no file is configured.
const DefaultAliasesFile = "header_aliases.yaml"

// Aliases maps a header variant to its canonical column name. Keys are
// case-sensitive: "VALOR" and "valor" are separate entries.
type Aliases map[string]string

// Canonical returns the canonical name for header, or header itself.
func (a Aliases) Canonical(header string) string {
	if c, ok := a[header]; ok {
		return c
	}
	return header
}

// Merge returns a copy of a overlaid with other.
func (a Aliases) Merge(other Aliases) Aliases {
	out := make(Aliases, len(a)+len(other))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

// LoadHeaderAliases returns a copy of a, so a fixed table can serve as an AliasLoader.
func (a Aliases) LoadHeaderAliases() (Aliases, error) {
	return a.Merge(nil), nil
}

// DefaultAliases returns the built-in variants seen in exported spreadsheets.
func DefaultAliases() Aliases {
	return Aliases{
		"subgrupos": "subgrupo",
		"Subgrupo":  "subgrupo",
		"SUBGRUPO":  "subgrupo",
		"valor":     "Valor",
		"VALOR":     "Valor",
		"codigo":    "Codigo",
		"Código":    "Codigo",
		"código":    "Codigo",
		"CODIGO":    "Codigo",
		"data":      "Data",
		"DATA":      "Data",
		"Grupo":     "grupo",
		"GRUPO":     "grupo",
	}
}

// AliasLoader is implemented by HeaderAliasStore, Aliases and the mock.
type AliasLoader interface {
	LoadHeaderAliases() (Aliases, error)
}

// HeaderAliasStore manages loading of the header alias file
type HeaderAliasStore struct {
	AliasesFile string
	logger      logging.Logger
}

// NewHeaderAliasStore creates a store for the given alias file. An empty name
// means DefaultAliasesFile.
func NewHeaderAliasStore(aliasesFile string, logger logging.Logger) *HeaderAliasStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &HeaderAliasStore{AliasesFile: aliasesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *HeaderAliasStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "cashflow-classifier", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadHeaderAliases returns the defaults overlaid with the alias file, if one
// is found. A missing file is not an error.
//
// Two layouts are accepted and may be mixed:
//
//	subgrupos: subgrupo          # variant: canonical
//	Valor: [valor, VALOR, vlr]   # canonical: [variants]
func (s *HeaderAliasStore) LoadHeaderAliases() (Aliases, error) {
	filename := s.AliasesFile
	if filename == "" {
		filename = DefaultAliasesFile
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.Debug("Header alias file not found, using defaults",
			logging.F(logging.FieldFile, filename))
		return DefaultAliases(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading header alias file: %w", err)
	}

	loaded, err := parseAliases(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing header alias file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded header aliases",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(loaded)))
	return DefaultAliases().Merge(loaded), nil
}

// SaveHeaderAliases writes aliases as "variant: canonical" pairs.
func (s *HeaderAliasStore) SaveHeaderAliases(aliases Aliases) error {
	filename := s.AliasesFile
	if filename == "" {
		filename = DefaultAliasesFile
	}
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(map[string]string(aliases))
	if err != nil {
		return fmt.Errorf("error marshaling header aliases: %w", err)
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("error writing header aliases: %w", err)
	}

	s.logger.Debug("Saved header aliases",
		logging.F(logging.FieldFile, filename),
		logging.F(logging.FieldCount, len(aliases)))
	return nil
}

func parseAliases(data []byte) (Aliases, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	aliases := Aliases{}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			aliases[key] = strings.TrimSpace(v)
		case []interface{}:
			for _, item := range v {
				variant, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("alias list for %q must contain strings", key)
				}
				aliases[strings.TrimSpace(variant)] = key
			}
		case nil:
		default:
			return nil, fmt.Errorf("unsupported alias value for %q", key)
		}
	}
	return aliases, nil
}
