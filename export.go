package examgen

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// exportBaseName prefixes every generated artifact.
const exportBaseName = "BA_questions"

// TimestampFilename builds "<base>_<YYYYMMDD_HHMMSS>.<ext>".
func TimestampFilename(base, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, at.Format("20060102_150405"), ext)
}

// BuildJSON serializes the question set as indented UTF-8 JSON.
func BuildJSON(questions []Question) ([]byte, error) {
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize questions: %w", err)
	}
	return data, nil
}

// BuildStatsJSON serializes the statistics report for a question set.
func BuildStatsJSON(questions []Question) ([]byte, error) {
	data, err := json.MarshalIndent(GenerateStatistics(questions), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize statistics: %w", err)
	}
	return data, nil
}

// BuildZip bundles all export formats into one archive. Every entry shares
// the same timestamp so the files sort together after extraction.
func BuildZip(questions []Question, pdfFormat PDFFormat) ([]byte, error) {
	at := time.Now()

	jsonData, err := BuildJSON(questions)
	if err != nil {
		return nil, err
	}
	statsData, err := BuildStatsJSON(questions)
	if err != nil {
		return nil, err
	}
	excelData, err := BuildExcel(questions)
	if err != nil {
		return nil, err
	}
	pdfData, err := BuildPDF(questions, pdfFormat)
	if err != nil {
		return nil, err
	}

	entries := []struct {
		name string
		data []byte
	}{
		{TimestampFilename(exportBaseName, "json", at), jsonData},
		{TimestampFilename(exportBaseName, "xlsx", at), excelData},
		{TimestampFilename(exportBaseName, "pdf", at), pdfData},
		{TimestampFilename("BA_question_stats", "json", at), statsData},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to add %s to archive: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
