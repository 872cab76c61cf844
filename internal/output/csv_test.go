package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shelfwatch/harvest/pkg/models"
)

func TestSaveProductsRoundTrip(t *testing.T) {
	products := []models.Product{
		{Title: "Asus X", Description: "ok", Price: 299.0, Rating: 3, NumOfReviews: 12},
		{Title: "Dell Y"},
		{Title: `Acer "Swift", 14in`, Description: `has, commas and "quotes"`, Price: 1099.99, Rating: 5, NumOfReviews: 101},
	}

	path := filepath.Join(t.TempDir(), "laptops.csv")
	if err := SaveProducts(path, products); err != nil {
		t.Fatalf("SaveProducts failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to read output back: %v", err)
	}

	if len(rows) != len(products)+1 {
		t.Fatalf("expected %d rows, got %d", len(products)+1, len(rows))
	}

	for i, field := range models.ProductFields {
		if rows[0][i] != field {
			t.Errorf("header column %d: expected %s, got %s", i, field, rows[0][i])
		}
	}

	for i, p := range products {
		row := rows[i+1]
		if row[0] != p.Title {
			t.Errorf("row %d title: got %q, want %q", i, row[0], p.Title)
		}
		if row[1] != p.Description {
			t.Errorf("row %d description: got %q, want %q", i, row[1], p.Description)
		}
		if price, err := strconv.ParseFloat(row[2], 64); err != nil || price != p.Price {
			t.Errorf("row %d price: got %q, want %v", i, row[2], p.Price)
		}
		if rating, err := strconv.Atoi(row[3]); err != nil || rating != p.Rating {
			t.Errorf("row %d rating: got %q, want %d", i, row[3], p.Rating)
		}
		if reviews, err := strconv.Atoi(row[4]); err != nil || reviews != p.NumOfReviews {
			t.Errorf("row %d reviews: got %q, want %d", i, row[4], p.NumOfReviews)
		}
	}
}

func TestSaveProductsUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := SaveProducts(path, nil); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
