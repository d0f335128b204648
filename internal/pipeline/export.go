package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"go-dashboard-pipeline/internal/model"
	"go-dashboard-pipeline/pkg/utils"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json"
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	ExportedAt  time.Time `json:"exported_at"`
}

// ExportReport writes every panel of report under the output manager's
// directory for reportID, one file per panel in the given format.
func ExportReport(report model.Report, reportID, format string, om *utils.OutputManager) []ExportResult {
	results := make([]ExportResult, 0, len(report.Panels))
	for i, panel := range report.Panels {
		path, err := om.PanelFilePath(reportID, i+1, panel.Title, format)
		if err != nil {
			results = append(results, ExportResult{Type: format, Title: panel.Title, Error: err.Error(), ExportedAt: time.Now()})
			continue
		}
		results = append(results, ExportPanel(panel, reportID, path))
	}
	return results
}

// ExportPanel writes one panel to path. The extension picks CSV or JSON;
// anything else falls back to CSV.
func ExportPanel(panel model.Panel, reportID, path string) ExportResult {
	var err error
	var recordCount int

	fileType := utils.GetFileType(path)
	switch fileType {
	case "json":
		recordCount, err = exportToJSON(panel, reportID, path)
	default:
		fileType = "csv"
		recordCount, err = exportToCSV(panel, path)
	}

	result := ExportResult{
		Type:        fileType,
		Path:        path,
		Title:       panel.Title,
		RecordCount: recordCount,
		Success:     err == nil,
		ExportedAt:  time.Now(),
	}

	if err != nil {
		result.Error = err.Error()
		log.Printf("❌ Export of %q failed: %v", panel.Title, err)
	} else {
		log.Printf("💾 Exported %d rows of %q to %s", recordCount, panel.Title, path)
	}

	return result
}

func createFile(path string) (*os.File, error) {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

// exportToCSV writes a derived table as group, record_count, metrics...
// and a scatter panel as its projected columns.
func exportToCSV(panel model.Panel, path string) (int, error) {
	file, err := createFile(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	var header []string
	var rows [][]string
	switch {
	case panel.Table != nil:
		header = append([]string{panel.Table.GroupKey, "record_count"}, panel.Table.Metrics...)
		for _, r := range panel.Table.Rows {
			row := []string{r.Group.String(), strconv.Itoa(r.RecordCount)}
			for _, v := range r.Values {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}
			rows = append(rows, row)
		}
	case panel.Points != nil:
		header = panel.Points.Columns()
		for i := 0; i < panel.Points.Len(); i++ {
			row := make([]string, len(header))
			for c, col := range header {
				v, _ := panel.Points.Value(i, col)
				row[c] = v.String()
			}
			rows = append(rows, row)
		}
	}

	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	recordCount := 0
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return recordCount, fmt.Errorf("failed to write row: %w", err)
		}
		recordCount++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return recordCount, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return recordCount, nil
}

// exportToJSON writes the panel with export metadata
func exportToJSON(panel model.Panel, reportID, path string) (int, error) {
	file, err := createFile(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	recordCount := panel.Table.Len() + panel.Points.Len()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	exportData := map[string]interface{}{
		"export_info": map[string]interface{}{
			"report_id":    reportID,
			"exported_at":  time.Now().UTC(),
			"record_count": recordCount,
		},
		"data": panel,
	}

	if err := encoder.Encode(exportData); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}

	return recordCount, nil
}
