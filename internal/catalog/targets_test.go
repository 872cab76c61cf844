package catalog

import (
	"strings"
	"testing"
)

func TestDefaultTargets(t *testing.T) {
	targets, err := DefaultTargets("https://webscraper.io/test-sites/e-commerce/more/")
	if err != nil {
		t.Fatalf("DefaultTargets failed: %v", err)
	}

	expected := []struct {
		label string
		url   string
	}{
		{"home", "https://webscraper.io/test-sites/e-commerce/more/"},
		{"computers", "https://webscraper.io/test-sites/e-commerce/more/computers"},
		{"laptops", "https://webscraper.io/test-sites/e-commerce/more/computers/laptops"},
		{"tablets", "https://webscraper.io/test-sites/e-commerce/more/computers/tablets"},
		{"phones", "https://webscraper.io/test-sites/e-commerce/more/phones"},
		{"touch", "https://webscraper.io/test-sites/e-commerce/more/phones/touch"},
	}

	if len(targets) != len(expected) {
		t.Fatalf("expected %d targets, got %d", len(expected), len(targets))
	}
	for i, want := range expected {
		if targets[i].Label != want.label {
			t.Errorf("target %d: expected label %q, got %q", i, want.label, targets[i].Label)
		}
		if targets[i].URL != want.url {
			t.Errorf("target %d (%s): expected URL %q, got %q", i, want.label, want.url, targets[i].URL)
		}
	}
}

func TestDefaultTargetsNoTrailingSlash(t *testing.T) {
	targets, err := DefaultTargets("http://localhost:8080/catalog")
	if err != nil {
		t.Fatalf("DefaultTargets failed: %v", err)
	}

	if targets[0].URL != "http://localhost:8080/catalog" {
		t.Errorf("home should use the catalog root as given, got %q", targets[0].URL)
	}
	if targets[1].URL != "http://localhost:8080/catalog/computers" {
		t.Errorf("expected joined sub-page URL, got %q", targets[1].URL)
	}
}

func TestFilterTargets(t *testing.T) {
	targets, err := DefaultTargets("https://webscraper.io/test-sites/e-commerce/more/")
	if err != nil {
		t.Fatalf("DefaultTargets failed: %v", err)
	}

	t.Run("empty filter keeps all", func(t *testing.T) {
		got, err := FilterTargets(targets, nil)
		if err != nil {
			t.Fatalf("FilterTargets failed: %v", err)
		}
		if len(got) != len(targets) {
			t.Errorf("expected %d targets, got %d", len(targets), len(got))
		}
	})

	t.Run("subset keeps declaration order", func(t *testing.T) {
		got, err := FilterTargets(targets, []string{"phones", "laptops"})
		if err != nil {
			t.Fatalf("FilterTargets failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 targets, got %d", len(got))
		}
		if got[0].Label != "laptops" || got[1].Label != "phones" {
			t.Errorf("expected [laptops phones], got [%s %s]", got[0].Label, got[1].Label)
		}
	})

	t.Run("unknown label fails", func(t *testing.T) {
		_, err := FilterTargets(targets, []string{"laptops", "desktops"})
		if err == nil {
			t.Fatal("expected error for unknown label")
		}
		if !strings.Contains(err.Error(), "desktops") {
			t.Errorf("error should name the unknown label, got: %v", err)
		}
	})

	t.Run("duplicate labels collapse", func(t *testing.T) {
		got, err := FilterTargets(targets, []string{"home", "home"})
		if err != nil {
			t.Fatalf("FilterTargets failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 target, got %d", len(got))
		}
	})
}
