package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Document is the file layout used by Export and Import.
type Document struct {
	Settings []Setting `yaml:"settings" toml:"settings"`
}

// Format selects the document encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat accepts "yaml", "yml" and "toml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("unknown document format %q", s)
}

// FormatForPath picks the format from a file extension, defaulting to YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// ImportReport summarizes an Import run.
type ImportReport struct {
	Created []Setting
	Updated []Setting
	// Skipped holds ports already configured when overwrite is off.
	Skipped []string
	// Rejected maps an entry index to its validation or uniqueness error.
	Rejected map[int]error
}

// Export writes every record as a YAML Document. Ids are not exported.
func (r *Repository) Export(ctx context.Context, w io.Writer) error {
	return r.ExportAs(ctx, w, FormatYAML)
}

// ExportAs writes every record as a Document in format f.
func (r *Repository) ExportAs(ctx context.Context, w io.Writer, f Format) error {
	list, err := r.ListAll(ctx)
	if err != nil {
		return err
	}
	doc := Document{Settings: list}

	switch f {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode settings: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown document format %v", f)
}

// Import reads a YAML Document from rd and creates each entry.
func (r *Repository) Import(ctx context.Context, rd io.Reader, overwrite bool) (ImportReport, error) {
	return r.ImportAs(ctx, rd, FormatYAML, overwrite)
}

// ImportAs reads a Document in format f and creates each entry. Entries for
// ports that already exist are updated when overwrite is set and skipped
// otherwise. Invalid entries are collected in the report; a storage failure
// stops the import.
func (r *Repository) ImportAs(ctx context.Context, rd io.Reader, f Format, overwrite bool) (ImportReport, error) {
	report := ImportReport{Rejected: make(map[int]error)}

	doc, err := decodeDocument(rd, f)
	if err != nil {
		return report, err
	}

	for i, entry := range doc.Settings {
		created, err := r.Create(ctx, entry)
		if err == nil {
			report.Created = append(report.Created, created)
			continue
		}

		var dup *DuplicatePortError
		switch {
		case errors.As(err, &dup) && overwrite && dup.ExistingID != 0:
			updated, err := r.Update(ctx, dup.ExistingID, entry)
			if err != nil {
				if errors.Is(err, ErrStorage) {
					return report, err
				}
				report.Rejected[i] = err
				continue
			}
			report.Updated = append(report.Updated, updated)
		case errors.As(err, &dup):
			report.Skipped = append(report.Skipped, dup.Port)
		case errors.Is(err, ErrStorage):
			return report, err
		default:
			report.Rejected[i] = err
		}
	}
	return report, nil
}

func decodeDocument(rd io.Reader, f Format) (Document, error) {
	var doc Document
	switch f {
	case FormatTOML:
		if err := toml.NewDecoder(rd).Decode(&doc); err != nil {
			return doc, fmt.Errorf("decode settings: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(rd).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return doc, fmt.Errorf("decode settings: %w", err)
		}
	default:
		return doc, fmt.Errorf("unknown document format %v", f)
	}
	return doc, nil
}
