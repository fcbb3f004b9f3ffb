package staticcatalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"dungeoncore/internal/domain/progression"
)

//go:embed default_catalog.json
var defaultCatalog []byte

type document struct {
	Monsters  map[string]progression.MonsterRecord `json:"monsters"`
	Constants map[string]int                       `json:"constants"`
}

// Provider serves the catalog from a JSON file, or from the built-in
// catalog when Path is empty.
type Provider struct {
	Path string
}

func (p Provider) MonsterTypes(ctx context.Context) (map[string]progression.MonsterDefinition, error) {
	doc, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]progression.MonsterDefinition, len(doc.Monsters))
	for name, rec := range doc.Monsters {
		out[name] = rec.Definition(name)
	}
	return out, nil
}

func (p Provider) GameConstants(ctx context.Context) (map[string]int, error) {
	doc, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Constants == nil {
		return map[string]int{}, nil
	}
	return doc.Constants, nil
}

func (p Provider) load(_ context.Context) (document, error) {
	raw := defaultCatalog
	if path := strings.TrimSpace(p.Path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return document{}, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = b
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc, nil
}
