package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shelfwatch/harvest/pkg/models"
)

// SaveProducts writes product records to a CSV file with the standard header
// row, one record per row in input order. The file is created or truncated.
//
// Callers skip pages that yielded no records, so no header-only files are
// produced.
func SaveProducts(path string, products []models.Product) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(models.ProductFields); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range products {
		row := []string{
			p.Title,
			p.Description,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
			strconv.Itoa(p.Rating),
			strconv.Itoa(p.NumOfReviews),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
