// internal/catalog/targets.go
package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/shelfwatch/harvest/pkg/models"
)

// Relative paths of the catalog pages. Declaration order is harvest order
// and carries through to the output files.
var pagePaths = []struct {
	label string
	path  string
}{
	{"home", ""},
	{"computers", "computers"},
	{"laptops", "computers/laptops"},
	{"tablets", "computers/tablets"},
	{"phones", "phones"},
	{"touch", "phones/touch"},
}

// DefaultTargets builds the page map by joining the known page paths onto
// the catalog root URL, in declaration order.
func DefaultTargets(catalogURL string) ([]models.PageTarget, error) {
	targets := make([]models.PageTarget, 0, len(pagePaths))
	for _, p := range pagePaths {
		target := catalogURL
		if p.path != "" {
			joined, err := url.JoinPath(catalogURL, p.path)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s URL: %w", p.label, err)
			}
			target = joined
		}
		targets = append(targets, models.PageTarget{Label: p.label, URL: target})
	}
	return targets, nil
}

// FilterTargets keeps only the targets whose labels appear in labels. The
// result preserves declaration order regardless of the order labels were
// given in. Unknown labels are an error.
func FilterTargets(targets []models.PageTarget, labels []string) ([]models.PageTarget, error) {
	if len(labels) == 0 {
		return targets, nil
	}

	wanted := make(map[string]bool, len(labels))
	for _, label := range labels {
		wanted[label] = true
	}

	filtered := make([]models.PageTarget, 0, len(labels))
	for _, t := range targets {
		if wanted[t.Label] {
			filtered = append(filtered, t)
			delete(wanted, t.Label)
		}
	}

	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for label := range wanted {
			unknown = append(unknown, label)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown page labels: %s", strings.Join(unknown, ", "))
	}

	return filtered, nil
}
