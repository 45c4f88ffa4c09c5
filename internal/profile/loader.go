package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/profilescan/internal/model"
)

// MaxProfileSize is the maximum profile file size in bytes.
// 10MB is orders of magnitude beyond any real profile snapshot and
// prevents memory exhaustion from a mistaken path argument.
const MaxProfileSize = 10 * 1024 * 1024

var (
	// ErrProfileNotFound is returned when the profile file does not exist.
	ErrProfileNotFound = errors.New("profile file not found")

	// ErrProfileTooLarge is returned when the profile file exceeds MaxProfileSize.
	ErrProfileTooLarge = errors.New("profile file too large")

	// ErrMalformedProfile is returned when the profile file cannot be decoded.
	// Wrapped errors name the offending field where the decoder reports one.
	ErrMalformedProfile = errors.New("malformed profile")
)

// Load reads and decodes one profile record from the given path.
// The decoder is chosen by extension: .json decodes as JSON, .yaml and .yml
// as YAML. Any other extension tries JSON first and falls back to YAML.
// The record is validated before being returned.
func Load(path string) (*model.ProfileRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, err
	}
	if info.Size() > MaxProfileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrProfileTooLarge, path, info.Size(), MaxProfileSize)
	}

	data, err := os.ReadFile(path) //nolint:gosec // User-provided profile path is intentional
	if err != nil {
		return nil, err
	}

	record, err := decode(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}

// decode picks the decoder from the extension.
func decode(data []byte, ext string) (*model.ProfileRecord, error) {
	switch ext {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		record, jsonErr := decodeJSON(data)
		if jsonErr == nil {
			return record, nil
		}
		record, yamlErr := decodeYAML(data)
		if yamlErr == nil {
			return record, nil
		}
		return nil, jsonErr
	}
}

// decodeJSON unmarshals a JSON profile. Type mismatches are reported with
// the offending field name so users can fix the file directly.
func decodeJSON(data []byte) (*model.ProfileRecord, error) {
	var record model.ProfileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("%w: field %q expects %s, got %s", ErrMalformedProfile, typeErr.Field, typeErr.Type, typeErr.Value)
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedProfile, err)
	}
	return &record, nil
}

// decodeYAML unmarshals a YAML profile.
func decodeYAML(data []byte) (*model.ProfileRecord, error) {
	var record model.ProfileRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedProfile, err)
	}
	return &record, nil
}
