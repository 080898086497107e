package pricing

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"mealmode/internal/ingredient"
)

// priceTTL is how long a scraped price is considered fresh.
const priceTTL = time.Hour

// Fetcher retrieves the current package price advertised on a product page.
type Fetcher interface {
	FetchPrice(ctx context.Context, url string) (float64, error)
}

// HTTPFetcher scrapes product pages for a price.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with a sane timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: 15 * time.Second}}
}

var priceRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// price markup seen in the wild, most specific first
var priceSelectors = []string{
	`meta[itemprop="price"]`,
	`meta[property="product:price:amount"]`,
	`[itemprop="price"]`,
	`.price`,
}

// FetchPrice fetches the URL and extracts the first recognizable price.
func (f *HTTPFetcher) FetchPrice(ctx context.Context, url string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to parse HTML: %w", err)
	}

	for _, sel := range priceSelectors {
		var found *float64
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text, ok := s.Attr("content")
			if !ok {
				text = s.Text()
			}
			if v, err := parsePrice(text); err == nil {
				found = &v
				return false
			}
			return true
		})
		if found != nil {
			return *found, nil
		}
	}
	return 0, fmt.Errorf("no price found on page")
}

// parsePrice extracts the first number from a price string, accepting a
// comma as decimal separator ("€ 2,49").
func parsePrice(text string) (float64, error) {
	match := priceRe.FindString(text)
	if match == "" {
		return 0, fmt.Errorf("no number in %q", text)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("non-positive price %v", v)
	}
	return v, nil
}

// Service refreshes cached market prices for the ingredient catalog.
type Service struct {
	ingredients *ingredient.Repository
	fetcher     Fetcher
	now         func() time.Time
}

// NewService creates a Service.
func NewService(ingredients *ingredient.Repository, fetcher Fetcher) *Service {
	return &Service{ingredients: ingredients, fetcher: fetcher, now: time.Now}
}

// RefreshAll walks the catalog and refreshes every ingredient that has price
// sources. Scrape failures are cached per source and logged; they never
// abort the run.
func (s *Service) RefreshAll(ctx context.Context) error {
	catalog, err := s.ingredients.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ingredient catalog: %w", err)
	}

	for i := range catalog {
		ing := &catalog[i]
		if len(ing.PriceSources) == 0 {
			continue
		}
		if !s.RefreshIngredient(ctx, ing) {
			continue
		}
		if err := s.ingredients.Save(ctx, *ing); err != nil {
			return fmt.Errorf("failed to save refreshed ingredient %d: %w", ing.ID, err)
		}
	}
	return nil
}

// RefreshIngredient re-scrapes the ingredient's stale sources and recomputes
// its cached market price as the cheapest per-unit price across sources.
// Reports whether anything changed.
func (s *Service) RefreshIngredient(ctx context.Context, ing *ingredient.Ingredient) bool {
	now := s.now().UTC()
	changed := false

	for i := range ing.PriceSources {
		src := &ing.PriceSources[i]
		if src.CachedPrice != nil && now.Sub(src.UpdatedAt) <= priceTTL {
			continue
		}

		price, err := s.fetcher.FetchPrice(ctx, src.URL)
		src.UpdatedAt = now
		changed = true
		if err != nil {
			log.Printf("Warning: failed to scrape %s: %v", src.URL, err)
			src.CachedPrice = nil
			src.CachedError = err.Error()
			continue
		}
		if src.Quantity <= 0 {
			src.CachedPrice = nil
			src.CachedError = "source has no package quantity"
			continue
		}
		perUnit := price / src.Quantity
		src.CachedPrice = &perUnit
		src.CachedError = ""
	}

	var best *float64
	for i := range ing.PriceSources {
		p := ing.PriceSources[i].CachedPrice
		if p != nil && (best == nil || *p < *best) {
			best = p
		}
	}
	if changed {
		ing.MarketPrice = best
		ing.MarketPriceAt = now
	}
	return changed
}
