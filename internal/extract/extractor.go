// internal/extract/extractor.go
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/shelfwatch/harvest/pkg/models"
)

// Selectors locate product fields within the rendered document
type Selectors struct {
	Listing     string
	Title       string
	Description string
	Price       string
	Star        string
	ReviewCount string
}

// DefaultSelectors returns the selector set matching the storefront markup
func DefaultSelectors() Selectors {
	return Selectors{
		Listing:     ".thumbnail",
		Title:       ".title",
		Description: ".description",
		Price:       ".price",
		Star:        "span.ws-icon-star",
		ReviewCount: ".review-count",
	}
}

// Extractor turns rendered catalog HTML into product records
type Extractor struct {
	sel Selectors
}

// New creates a new Extractor with the given selectors
func New(sel Selectors) *Extractor {
	return &Extractor{sel: sel}
}

// Products parses the document and extracts every listing in document order.
//
// A listing whose extraction fails is dropped and counted so its siblings
// still come through; only a document-level parse failure is an error.
func (e *Extractor) Products(html string) ([]models.Product, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse document: %w", err)
	}

	products := []models.Product{}
	dropped := 0

	doc.Find(e.sel.Listing).Each(func(i int, listing *goquery.Selection) {
		product, err := e.One(listing)
		if err != nil {
			dropped++
			log.Debug().Err(err).Int("listing", i).Msg("Dropped malformed listing")
			return
		}
		products = append(products, product)
	})

	return products, dropped, nil
}

// One extracts a single listing subtree into a product record.
//
// The title attribute is required. The other fields fall back to their zero
// values when the element is missing, but an element that is present and
// fails to coerce drops the whole record.
func (e *Extractor) One(listing *goquery.Selection) (models.Product, error) {
	title, ok := listing.Find(e.sel.Title).First().Attr("title")
	if !ok {
		return models.Product{}, fmt.Errorf("listing has no title attribute")
	}

	product := models.Product{Title: title}

	if desc := listing.Find(e.sel.Description).First(); desc.Length() > 0 {
		product.Description = strings.TrimSpace(strings.ReplaceAll(desc.Text(), "\u00a0", " "))
	}

	if price := listing.Find(e.sel.Price).First(); price.Length() > 0 {
		raw := strings.TrimSpace(strings.ReplaceAll(price.Text(), "$", ""))
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("unparsable price %q: %w", raw, err)
		}
		product.Price = value
	}

	product.Rating = listing.Find(e.sel.Star).Length()

	if reviews := listing.Find(e.sel.ReviewCount).First(); reviews.Length() > 0 {
		fields := strings.Fields(reviews.Text())
		if len(fields) == 0 {
			return models.Product{}, fmt.Errorf("review count has no leading token")
		}
		count, err := strconv.Atoi(fields[0])
		if err != nil {
			return models.Product{}, fmt.Errorf("unparsable review count %q: %w", fields[0], err)
		}
		product.NumOfReviews = count
	}

	return product, nil
}
