package repositories

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"distribution-planner/internal/api/dto"
	"distribution-planner/internal/domain"
)

// Supported dataset encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// LoadDataset reads a dataset file. The format follows the extension
// (.json, .yaml, .yml).
func LoadDataset(path string) (*domain.Dataset, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: open %q: %w", path, err)
	}
	defer f.Close()

	ds, err := DecodeDataset(f, format)
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", path, err)
	}
	return ds, nil
}

// DecodeDataset parses and validates one dataset record.
// Malformed documents and missing or invalid fields wrap domain.ErrInvalidDataset.
func DecodeDataset(r io.Reader, format string) (*domain.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: read: %w", err)
	}

	var req dto.DatasetRequest
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: parse json: %v", domain.ErrInvalidDataset, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: parse yaml: %v", domain.ErrInvalidDataset, err)
		}
	default:
		return nil, fmt.Errorf("decode dataset: unsupported format %q", format)
	}

	return req.ToDomain()
}

// SaveDataset writes a dataset in the format implied by the path extension.
func SaveDataset(path string, ds *domain.Dataset) error {
	format, err := formatFromPath(path)
	if err != nil {
		return fmt.Errorf("save dataset: %w", err)
	}

	req := dto.FromDataset(ds)

	var data []byte
	if format == FormatYAML {
		data, err = yaml.Marshal(req)
	} else {
		data, err = json.MarshalIndent(req, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("save dataset: encode %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save dataset: write %q: %w", path, err)
	}
	return nil
}

func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q", filepath.Ext(path))
	}
}
