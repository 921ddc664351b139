package scoring

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strconv"

	"creative-evaluator-backend/internal/models"
)

const notApplicable = "N/A"

// CSVHeader lists the export columns in order.
func CSVHeader() []string {
	header := []string{"Filename", "Overall Score", "Brand Subtotal", "E-commerce Subtotal"}
	header = append(header, models.BrandParameters...)
	header = append(header, models.EcommerceParameters...)
	return append(header, "Top Strength", "Top Risk")
}

// BuildCSV renders one row per result. Absent e-commerce values are N/A and
// only the first strength and risk are kept.
func BuildCSV(results []models.ScoreResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader()); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range results {
		row := []string{
			r.Filename,
			strconv.Itoa(r.OverallScore),
			strconv.Itoa(r.BrandSubtotal),
			notApplicable,
		}
		if r.EcommerceSubtotal != nil {
			row[3] = strconv.Itoa(*r.EcommerceSubtotal)
		}
		for _, param := range models.BrandParameters {
			if v, ok := r.BrandScores[param]; ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, "")
			}
		}
		for _, param := range models.EcommerceParameters {
			if v, ok := r.EcommerceScores[param]; ok {
				row = append(row, strconv.Itoa(v))
			} else {
				row = append(row, notApplicable)
			}
		}
		row = append(row, first(r.Strengths), first(r.Risks))

		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row for %s: %w", r.Filename, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeCSV builds the CSV and base64-encodes it for the csv_data field.
func EncodeCSV(results []models.ScoreResult) (string, error) {
	data, err := BuildCSV(results)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func first(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}
