package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"fims/internal/cache"
	"fims/internal/model"
	"fims/internal/repository"
)

// SeedItemData is one entry of the items source. Price accepts a JSON number
// or a numeric string.
type SeedItemData struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Category string          `json:"category"`
	Price    json.RawMessage `json:"price"`
}

type seedRow struct {
	ItemID   int64
	Name     string
	Quantity int
	Price    string
	Result   string
}

type seedSummary struct {
	Rows                      []seedRow
	Created, Updated, Skipped int
}

// fetchItems reads the items array from an http(s) URL or a local file.
func fetchItems(ctx context.Context, src string) ([]SeedItemData, error) {
	var body io.ReadCloser
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch from API: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("API returned status code: %d", resp.StatusCode)
		}
		body = resp.Body
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("open source: %w", err)
		}
		body = f
	}
	defer body.Close()

	var items []SeedItemData
	if err := json.NewDecoder(body).Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return items, nil
}

func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// seedItems upserts every valid entry, reporting whether each one was new.
// Cached copies of written items are dropped so a running server serves the
// seeded values.
func seedItems(ctx context.Context, repo repository.ItemRepository, itemCache *cache.Client, data []SeedItemData) (seedSummary, error) {
	var s seedSummary
	for _, d := range data {
		row := seedRow{ItemID: d.ItemID, Name: strings.TrimSpace(d.Name), Quantity: d.Quantity}

		price, err := parsePrice(d.Price)
		if err != nil || row.Name == "" {
			log.Warn().Int64("item_id", d.ItemID).Msg("skipping item with invalid name or price")
			row.Result = "skipped"
			s.Rows = append(s.Rows, row)
			s.Skipped++
			continue
		}
		row.Price = price.StringFixed(2)

		existing, err := repo.FindByID(ctx, d.ItemID)
		if err != nil {
			return s, fmt.Errorf("error checking item %d: %w", d.ItemID, err)
		}

		item := &model.Item{
			ItemID:   d.ItemID,
			Name:     row.Name,
			Quantity: d.Quantity,
			Category: d.Category,
			Price:    price.InexactFloat64(),
		}
		if err := repo.Upsert(ctx, item); err != nil {
			return s, fmt.Errorf("error saving item %d: %w", d.ItemID, err)
		}
		_ = itemCache.Delete(ctx, cache.ItemKey(d.ItemID))

		if existing != nil {
			row.Result = "updated"
			s.Updated++
		} else {
			row.Result = "created"
			s.Created++
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
