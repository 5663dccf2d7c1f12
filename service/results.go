package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"storepulse/models"
)

// ResultsStorage saves analytics result sets to disk so an operator can pull
// a query result into a spreadsheet later.
type ResultsStorage struct {
	resultsDir string
}

func NewResultsStorage(resultsDir string) (*ResultsStorage, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	return &ResultsStorage{resultsDir: resultsDir}, nil
}

func (r *ResultsStorage) generateFileName(format string) string {
	timestamp := time.Now().Format("20060102_150405")
	nanos := time.Now().UnixNano()
	return fmt.Sprintf("result_%s_%d.%s", timestamp, nanos, format)
}

// SaveResultAsJSON saves a result set with its query as a JSON file.
func (r *ResultsStorage) SaveResultAsJSON(result *models.ResultSet, query string) (string, error) {
	filename := r.generateFileName("json")
	filePath := filepath.Join(r.resultsDir, filename)

	resultData := models.ResultFile{
		Filename:  filename,
		Query:     query,
		Timestamp: time.Now().Format(time.RFC3339),
		Columns:   result.Columns,
		Rows:      result.Rows,
		RowCount:  result.RowCount(),
	}

	data, err := json.MarshalIndent(resultData, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}

	return filename, nil
}

// SaveResultAsCSV saves a result set as a CSV file with a header row.
func (r *ResultsStorage) SaveResultAsCSV(result *models.ResultSet) (string, error) {
	filename := r.generateFileName("csv")
	filePath := filepath.Join(r.resultsDir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(result.Columns); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, val := range row {
			if val == nil {
				record[i] = ""
			} else {
				record[i] = fmt.Sprintf("%v", val)
			}
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return filename, nil
}

// GetResultFile reads a saved result file back into memory.
func (r *ResultsStorage) GetResultFile(filename string) (*models.ResultFile, error) {
	filePath := filepath.Join(r.resultsDir, filename)

	switch filepath.Ext(filename) {
	case ".json":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}

		var result models.ResultFile
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
		return &result, nil

	case ".csv":
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()

		records, err := csv.NewReader(file).ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		result := &models.ResultFile{
			Filename:  filename,
			Columns:   []string{},
			Rows:      [][]interface{}{},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if len(records) == 0 {
			return result, nil
		}

		result.Columns = records[0]
		result.Rows = make([][]interface{}, len(records)-1)
		for i, record := range records[1:] {
			row := make([]interface{}, len(record))
			for j, val := range record {
				row[j] = val
			}
			result.Rows[i] = row
		}
		result.RowCount = len(result.Rows)
		return result, nil
	}

	return nil, fmt.Errorf("unsupported file format")
}

// ListResultFiles returns metadata for every saved result file.
func (r *ResultsStorage) ListResultFiles() ([]models.ResultFileInfo, error) {
	files, err := os.ReadDir(r.resultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}

	var resultFiles []models.ResultFileInfo
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		ext := filepath.Ext(file.Name())
		if ext != ".json" && ext != ".csv" {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		resultFiles = append(resultFiles, models.ResultFileInfo{
			Filename: file.Name(),
			Size:     info.Size(),
			Modified: info.ModTime().Format(time.RFC3339),
			Format:   ext[1:],
		})
	}

	return resultFiles, nil
}

func (r *ResultsStorage) GetResultFilePath(filename string) string {
	return filepath.Join(r.resultsDir, filename)
}
