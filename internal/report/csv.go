package report

import (
	"encoding/base64"
	"fmt"
	"time"

	"creative-evaluator-backend/internal/models"
)

// DecodeCSV decodes the base64 csv_data field of a scoring result.
func DecodeCSV(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid CSV data: %v", models.ErrParse, err)
	}
	return data, nil
}

// CSVFilename names a CSV download after the export date.
func CSVFilename(now time.Time) string {
	return "creative-scores-" + now.Format("2006-01-02") + ".csv"
}
