package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/docent/internal/logging"
	"github.com/aretw0/docent/pkg/domain"
	"gopkg.in/yaml.v3"
)

// entry is the on-disk shape of one exhibit.
type entry struct {
	OneLiner  string            `json:"one_liner" yaml:"one_liner"`
	Questions []domain.Question `json:"questions" yaml:"questions"`
}

// Option configures loading.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger reports dropped entries and load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Load reads an exhibit catalog (YAML or JSON, by extension) keyed by exhibit
// name. The order of keys in the file is the catalog order.
func Load(path string, opts ...Option) (*domain.Catalog, error) {
	o := options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var exhibits []domain.Exhibit
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		exhibits, err = decodeJSON(data)
	} else {
		exhibits, err = decodeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filepath.Base(path), err)
	}

	for i := range exhibits {
		exhibits[i].Questions = dedupe(exhibits[i], o.logger)
	}
	return domain.NewCatalog(exhibits...)
}

// LoadOrEmpty is Load that degrades to an empty catalog, logging a warning.
func LoadOrEmpty(path string, logger *slog.Logger) *domain.Catalog {
	if logger == nil {
		logger = logging.NewNop()
	}
	cat, err := Load(path, WithLogger(logger))
	if err != nil {
		logger.Warn("Using empty question bank", "path", path, "err", err)
		empty, _ := domain.NewCatalog()
		return empty
	}
	logger.Info("Loaded exhibit questions", "exhibits", cat.Len())
	return cat
}

func dedupe(ex domain.Exhibit, logger *slog.Logger) []domain.Question {
	seen := make(map[string]bool, len(ex.Questions))
	out := ex.Questions[:0:0]
	for _, q := range ex.Questions {
		if q.ID == "" || seen[q.ID] {
			logger.Warn("Dropping question", "exhibit", ex.Name, "question_id", q.ID)
			continue
		}
		if domain.IsNavigational(q.ID) {
			logger.Warn("Dropping question with reserved id", "exhibit", ex.Name, "question_id", q.ID)
			continue
		}
		seen[q.ID] = true
		out = append(out, q)
	}
	return out
}

func decodeYAML(data []byte) ([]domain.Exhibit, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, errors.New("unexpected document")
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: catalog must be a mapping of exhibit name to definition", m.Line)
	}

	exhibits := make([]domain.Exhibit, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		var e entry
		if err := m.Content[i+1].Decode(&e); err != nil {
			return nil, fmt.Errorf("exhibit %q: %w", m.Content[i].Value, err)
		}
		exhibits = append(exhibits, domain.Exhibit{
			Name:      m.Content[i].Value,
			OneLiner:  e.OneLiner,
			Questions: e.Questions,
		})
	}
	return exhibits, nil
}

// decodeJSON walks the top-level object token by token; a map would lose key order.
func decodeJSON(data []byte) ([]domain.Exhibit, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("catalog must be an object keyed by exhibit name")
	}

	var exhibits []domain.Exhibit
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)

		var e entry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("exhibit %q: %w", name, err)
		}
		exhibits = append(exhibits, domain.Exhibit{
			Name:      name,
			OneLiner:  e.OneLiner,
			Questions: e.Questions,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return exhibits, nil
}
