package pricing

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mealmode/internal/ingredient"
)

type fakeFetcher struct {
	prices map[string]float64
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) FetchPrice(_ context.Context, url string) (float64, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return 0, err
	}
	if p, ok := f.prices[url]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("no price found on page")
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptr(v float64) *float64 { return &v }

func TestHTTPFetcher(t *testing.T) {
	t.Run("MetaPriceTag", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><head><meta itemprop="price" content="2.49"></head><body></body></html>`)
		}))
		defer srv.Close()

		price, err := NewHTTPFetcher().FetchPrice(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !approx(price, 2.49) {
			t.Errorf("Expected 2.49, got %v", price)
		}
	})

	t.Run("PriceClassWithCommaDecimal", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><span class="price">€ 3,79</span></body></html>`)
		}))
		defer srv.Close()

		price, err := NewHTTPFetcher().FetchPrice(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !approx(price, 3.79) {
			t.Errorf("Expected 3.79, got %v", price)
		}
	})

	t.Run("MetaTagPreferredOverPriceClass", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><head><meta itemprop="price" content="1.99"></head><body><span class="price">9.99</span></body></html>`)
		}))
		defer srv.Close()

		price, err := NewHTTPFetcher().FetchPrice(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !approx(price, 1.99) {
			t.Errorf("Expected the meta tag price 1.99, got %v", price)
		}
	})

	t.Run("NoPriceOnPage", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html><body><p>Out of stock</p></body></html>`)
		}))
		defer srv.Close()

		if _, err := NewHTTPFetcher().FetchPrice(context.Background(), srv.URL); err == nil {
			t.Error("Expected an error for a page without a price")
		}
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, err := NewHTTPFetcher().FetchPrice(context.Background(), srv.URL); err == nil {
			t.Error("Expected an error for a 500 response")
		}
	})
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "2.49", want: 2.49},
		{in: "€ 2,49", want: 2.49},
		{in: "$12.00 / pack", want: 12.00},
		{in: "3", want: 3},
		{in: "free", wantErr: true},
		{in: "0.00", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := parsePrice(c.in)
			if c.wantErr {
				if err == nil {
					t.Errorf("Expected an error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error for %q, got %v", c.in, err)
			}
			if !approx(got, c.want) {
				t.Errorf("Expected %v for %q, got %v", c.want, c.in, got)
			}
		})
	}
}

func TestRefreshIngredient(t *testing.T) {
	baseTime := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	newService := func(f Fetcher, now time.Time) *Service {
		s := NewService(nil, f)
		s.now = func() time.Time { return now }
		return s
	}

	t.Run("CheapestPerUnitAcrossSources", func(t *testing.T) {
		fetcher := &fakeFetcher{prices: map[string]float64{
			"https://shop-a.example/rice": 2.00, // 1 kg package
			"https://shop-b.example/rice": 3.00, // 2 kg package
		}}
		ing := &ingredient.Ingredient{
			ID:   1,
			Name: "Rice",
			Unit: ingredient.UnitKilogram,
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop-a.example/rice", Quantity: 1},
				{URL: "https://shop-b.example/rice", Quantity: 2},
			},
		}

		if !newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing) {
			t.Fatal("Expected a change on first refresh")
		}
		if ing.MarketPrice == nil || !approx(*ing.MarketPrice, 1.50) {
			t.Errorf("Expected market price 1.50 per kg, got %v", ing.MarketPrice)
		}
		if !ing.MarketPriceAt.Equal(baseTime) {
			t.Errorf("Expected market price timestamp %v, got %v", baseTime, ing.MarketPriceAt)
		}
	})

	t.Run("FreshSourcesNotRefetched", func(t *testing.T) {
		fetcher := &fakeFetcher{prices: map[string]float64{"https://shop.example/milk": 1.00}}
		ing := &ingredient.Ingredient{
			ID:   2,
			Name: "Milk",
			Unit: ingredient.UnitLiter,
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop.example/milk", Quantity: 1, CachedPrice: ptr(1.00), UpdatedAt: baseTime.Add(-30 * time.Minute)},
			},
		}

		if newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing) {
			t.Error("Expected no change while the cached price is fresh")
		}
		if len(fetcher.calls) != 0 {
			t.Errorf("Expected no fetches, got %v", fetcher.calls)
		}
	})

	t.Run("StaleSourceRefetched", func(t *testing.T) {
		fetcher := &fakeFetcher{prices: map[string]float64{"https://shop.example/milk": 1.20}}
		ing := &ingredient.Ingredient{
			ID:   2,
			Name: "Milk",
			Unit: ingredient.UnitLiter,
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop.example/milk", Quantity: 1, CachedPrice: ptr(1.00), UpdatedAt: baseTime.Add(-2 * time.Hour)},
			},
		}

		if !newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing) {
			t.Fatal("Expected a change for a stale source")
		}
		if ing.MarketPrice == nil || !approx(*ing.MarketPrice, 1.20) {
			t.Errorf("Expected market price 1.20, got %v", ing.MarketPrice)
		}
	})

	t.Run("ScrapeFailureCachedPerSource", func(t *testing.T) {
		fetcher := &fakeFetcher{
			prices: map[string]float64{"https://shop-b.example/eggs": 4.00},
			errs:   map[string]error{"https://shop-a.example/eggs": fmt.Errorf("connection refused")},
		}
		ing := &ingredient.Ingredient{
			ID:   3,
			Name: "Eggs",
			Unit: ingredient.UnitPiece,
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop-a.example/eggs", Quantity: 12},
				{URL: "https://shop-b.example/eggs", Quantity: 10},
			},
		}

		if !newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing) {
			t.Fatal("Expected a change")
		}
		if ing.PriceSources[0].CachedError == "" {
			t.Error("Expected the failure to be cached on the source")
		}
		if ing.PriceSources[0].CachedPrice != nil {
			t.Error("Expected no cached price on the failed source")
		}
		if ing.MarketPrice == nil || !approx(*ing.MarketPrice, 0.40) {
			t.Errorf("Expected market price 0.40 per piece from the working source, got %v", ing.MarketPrice)
		}
	})

	t.Run("AllSourcesFailingClearsMarketPrice", func(t *testing.T) {
		fetcher := &fakeFetcher{errs: map[string]error{"https://shop.example/flour": fmt.Errorf("timeout")}}
		ing := &ingredient.Ingredient{
			ID:   4,
			Name: "Flour",
			Unit: ingredient.UnitKilogram,
			MarketPrice: ptr(0.90),
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop.example/flour", Quantity: 1, CachedPrice: ptr(0.90), UpdatedAt: baseTime.Add(-2 * time.Hour)},
			},
		}

		if !newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing) {
			t.Fatal("Expected a change")
		}
		if ing.MarketPrice != nil {
			t.Errorf("Expected market price cleared, got %v", ing.MarketPrice)
		}
	})

	t.Run("MissingPackageQuantity", func(t *testing.T) {
		fetcher := &fakeFetcher{prices: map[string]float64{"https://shop.example/salt": 1.00}}
		ing := &ingredient.Ingredient{
			ID:   5,
			Name: "Salt",
			Unit: ingredient.UnitKilogram,
			PriceSources: []ingredient.PriceSource{
				{URL: "https://shop.example/salt"},
			},
		}

		newService(fetcher, baseTime).RefreshIngredient(context.Background(), ing)
		if ing.PriceSources[0].CachedPrice != nil {
			t.Error("Expected no cached price when the package quantity is missing")
		}
		if ing.PriceSources[0].CachedError == "" {
			t.Error("Expected an error cached on the source")
		}
	})
}
