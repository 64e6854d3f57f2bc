package parser

import (
	"fmt"
	"io"
	"os"

	"github.com/pedro-visualizer/backend/internal/models"
	"gopkg.in/yaml.v3"
)

// ParseSettings parses a YAML robot profile. Fields missing from the file
// keep their DefaultSettings values.
func ParseSettings(filePath string) (*models.Settings, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseSettingsFromReader(file)
}

// ParseSettingsFromReader parses a robot profile from an io.Reader.
func ParseSettingsFromReader(r io.Reader) (*models.Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// SaveSettings writes settings to filePath as YAML.
func SaveSettings(filePath string, settings models.Settings) error {
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(filePath, out, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
