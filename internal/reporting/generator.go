package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recsys-export-lab/internal/domain"
)

// Format selects the on-disk encoding of the dataset files.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// Manifest summarizes one dataset export.
type Manifest struct {
	GeneratedAt      time.Time `json:"generated_at"`
	Format           Format    `json:"format"`
	InteractionCount int       `json:"interaction_count"`
	ItemCount        int       `json:"item_count"`
	InteractionsFile string    `json:"interactions_file"`
	ItemsFile        string    `json:"items_file"`
}

// Generator writes normalized datasets to an output directory.
type Generator struct {
	outDir string
	format Format
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new dataset file generator.
func NewGenerator(outDir string, format Format) *Generator {
	return &Generator{
		outDir: outDir,
		format: format,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Write renders both datasets plus a manifest.json into the output directory.
func (g *Generator) Write(events []*domain.InteractionEvent, records []*domain.ProductRecord) (*Manifest, error) {
	if g.format != FormatCSV && g.format != FormatJSONL {
		return nil, fmt.Errorf("unsupported format %q", g.format)
	}

	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var (
		interactions, items string
		err                 error
	)
	switch g.format {
	case FormatCSV:
		interactions = RenderInteractionsCSV(events)
		items = RenderItemsCSV(records)
	case FormatJSONL:
		interactions, err = RenderInteractionsJSONL(events)
		if err != nil {
			return nil, err
		}
		items, err = RenderItemsJSONL(records)
		if err != nil {
			return nil, err
		}
	}

	manifest := &Manifest{
		GeneratedAt:      g.now(),
		Format:           g.format,
		InteractionCount: len(events),
		ItemCount:        len(records),
		InteractionsFile: "interactions." + string(g.format),
		ItemsFile:        "items." + string(g.format),
	}

	if err := g.writeFile(manifest.InteractionsFile, []byte(interactions)); err != nil {
		return nil, err
	}
	if err := g.writeFile(manifest.ItemsFile, []byte(items)); err != nil {
		return nil, err
	}

	manifestData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := g.writeFile("manifest.json", append(manifestData, '\n')); err != nil {
		return nil, err
	}

	return manifest, nil
}

func (g *Generator) writeFile(name string, data []byte) error {
	path := filepath.Join(g.outDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
