package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"chickpick/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Categories named by rows are upserted on the fly so a fresh database can
// be loaded from a single file.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

type csvRow struct {
	Slug        string
	Name        string
	Desc        string
	Cents       int64
	SwatchColor string
	Stock       int
	Featured    bool
	Category    string
	ImageURLs   []string
}

// Run parses CSV rows and upserts products grouped by slug. A row with an
// empty slug continues the previous product and contributes extra images.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	categoryIDs := make(map[string]string)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Slug != "" {
			if current != nil {
				if err := i.save(ctx, current, categoryIDs); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current, categoryIDs); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow, categoryIDs map[string]string) error {
	if row.Name == "" || row.Cents <= 0 {
		return fmt.Errorf("invalid product row (missing required fields) for slug %q", row.Slug)
	}

	p := domain.Product{
		Slug:          row.Slug,
		Name:          row.Name,
		Description:   row.Desc,
		PriceCents:    row.Cents,
		ImageURLs:     row.ImageURLs,
		SwatchColor:   row.SwatchColor,
		StockQuantity: row.Stock,
		IsFeatured:    row.Featured,
	}

	if row.Category != "" {
		id, ok := categoryIDs[row.Category]
		if !ok {
			cat, err := i.categories.Upsert(ctx, domain.Category{Name: row.Category})
			if err != nil {
				return fmt.Errorf("upsert category %q: %w", row.Category, err)
			}
			id = cat.ID
			categoryIDs[row.Category] = id
		}
		p.CategoryID = &id
		p.CategoryName = row.Category
	}

	if _, err := i.products.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Slug, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	slug := pick(record, index, "slug")
	imageURL := pick(record, index, "image_url")
	if slug == "" && imageURL == "" {
		return nil
	}

	var cents int64
	if centStr := pick(record, index, "price_cents"); centStr != "" {
		cents, _ = strconv.ParseInt(centStr, 10, 64)
	}
	var stock int
	if stockStr := pick(record, index, "stock_quantity"); stockStr != "" {
		stock, _ = strconv.Atoi(stockStr)
	}
	featured, _ := strconv.ParseBool(pick(record, index, "is_featured"))

	row := &csvRow{
		Slug:        slug,
		Name:        pick(record, index, "name"),
		Desc:        pick(record, index, "description"),
		Cents:       cents,
		SwatchColor: pick(record, index, "swatch_color"),
		Stock:       stock,
		Featured:    featured,
		Category:    pick(record, index, "category"),
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
