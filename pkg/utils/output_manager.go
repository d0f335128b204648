package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// CreateReportDir creates the directory holding one report's exported panels
func (om *OutputManager) CreateReportDir(reportID string) (string, error) {
	reportDir := filepath.Join(om.BaseOutputDir, reportID)

	err := os.MkdirAll(reportDir, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create report output directory: %w", err)
	}

	return reportDir, nil
}

// PanelFilePath generates the export path for panel n of a report
func (om *OutputManager) PanelFilePath(reportID string, n int, title, format string) (string, error) {
	reportDir, err := om.CreateReportDir(reportID)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%02d_%s.%s", n, Slug(title), strings.TrimPrefix(format, "."))
	return filepath.Join(reportDir, name), nil
}

// GetFileType determines the export format based on extension
func GetFileType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// Slug lowercases a title and keeps only letters, digits and underscores.
func Slug(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
