// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// DefaultExportPath returns history.<ext> next to the journal database.
func (s *Store) DefaultExportPath(ext string) string {
	return filepath.Join(filepath.Dir(s.path), "history."+ext)
}

// ExportYAML writes every recorded run, newest first, to path.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	runs, err := s.Runs(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(runs)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every recorded run, newest first, to path.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	runs, err := s.Runs(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
