package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"eyewear.GO/core/catalog"
	entity "eyewear.GO/model/entity/catalog"
	productRepo "eyewear.GO/model/repository/catalog"
)

// CSV columns understood by ImportCSV. Multi-valued cells use "|".
// Classification, measure and text columns are prefixed: attr.shape,
// measure.total_width_mm, text.description.
const (
	colID            = "id"
	colName          = "name"
	colBasePrice     = "base_price"
	colIsActive      = "is_active"
	colBadge         = "badge"
	colVariantID     = "variant_id"
	colSKU           = "sku"
	colSalePrice     = "sale_price"
	colColorName     = "color_name"
	colVariantActive = "variant_active"
	colPreorder      = "is_preorder"
	colImages        = "images"

	prefixAttr    = "attr."
	prefixMeasure = "measure."
	prefixText    = "text."
)

var staticColumns = map[string]bool{
	colID: true, colName: true, colBasePrice: true, colIsActive: true, colBadge: true,
	colVariantID: true, colSKU: true, colSalePrice: true, colColorName: true,
	colVariantActive: true, colPreorder: true, colImages: true,
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

type csvRow struct {
	line int
	get  func(col string) string
	cols []string
}

// ImportCSV reads products of kind from r and upserts them. Consecutive or
// scattered rows sharing an id add variants to the same product; rows
// without an id get a generated one.
func ImportCSV(ctx context.Context, repo *productRepo.ProductRepository, kind string, r io.Reader) (*ImportResult, error) {
	start := time.Now()
	d, ok := descriptorFor(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		headers[i] = h
		colIndex[h] = i
	}
	if _, ok := colIndex[colName]; !ok {
		return nil, fmt.Errorf("CSV must contain a %q column", colName)
	}

	res := &ImportResult{}
	for _, h := range headers {
		if !staticColumns[h] && !strings.HasPrefix(h, prefixAttr) &&
			!strings.HasPrefix(h, prefixMeasure) && !strings.HasPrefix(h, prefixText) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	var order []string
	items := make(map[string]*catalog.Item)
	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read CSV line %d: %w", line, err)
		}
		res.TotalRows++
		row := csvRow{line: line, cols: headers, get: func(col string) string {
			i, ok := colIndex[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}}

		id := row.get(colID)
		if id == "" {
			id = uuid.NewString()
		}
		it, seen := items[id]
		if !seen {
			first, warn, err := parseItem(d, id, row)
			if err != nil {
				res.Skipped++
				res.Warnings = append(res.Warnings, err.Error())
				continue
			}
			res.Warnings = append(res.Warnings, warn...)
			it = &first
			items[id] = it
			order = append(order, id)
		}
		v, err := parseVariant(row)
		if err != nil {
			res.Warnings = append(res.Warnings, err.Error())
			continue
		}
		if v != nil {
			it.Variants = append(it.Variants, *v)
		}
		if seen {
			it.Images = appendUnique(it.Images, splitCell(row.get(colImages))...)
		}
	}

	counts, err := repo.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	next := int(counts[kind])
	for _, id := range order {
		it := items[id]
		pos := next
		existing, err := repo.FindByID(ctx, kind, id)
		switch {
		case err == nil:
			pos = existing.Position
			res.Updated++
		case errors.Is(err, productRepo.ErrNotFound):
			next++
			res.Created++
		default:
			return nil, err
		}
		p := entity.FromItem(kind, pos, *it)
		if err := repo.Upsert(ctx, &p); err != nil {
			return nil, fmt.Errorf("upsert %s: %w", id, err)
		}
	}
	res.TotalTime = time.Since(start)
	return res, nil
}

func descriptorFor(kind string) (*catalog.Descriptor, bool) {
	for _, d := range Descriptors() {
		if d.Kind == kind {
			return d, true
		}
	}
	return nil, false
}

func parseItem(d *catalog.Descriptor, id string, row csvRow) (catalog.Item, []string, error) {
	it := catalog.Item{ID: id, Name: row.get(colName), IsActive: true, Badge: row.get(colBadge)}
	if it.Name == "" {
		return it, nil, fmt.Errorf("line %d: empty name, skipping", row.line)
	}
	if s := row.get(colBasePrice); s != "" {
		n, err := parsePrice(s)
		if err != nil {
			return it, nil, fmt.Errorf("line %d: base_price %q: %v, skipping", row.line, s, err)
		}
		it.BasePrice = n
	}
	if s := row.get(colIsActive); s != "" {
		it.IsActive = parseBool(s)
	}
	it.Images = splitCell(row.get(colImages))

	var warnings []string
	for _, col := range row.cols {
		val := row.get(col)
		if val == "" {
			continue
		}
		switch {
		case strings.HasPrefix(col, prefixAttr):
			key := strings.TrimPrefix(col, prefixAttr)
			values := splitCell(val)
			if dim, ok := d.Dimension(key); ok {
				for _, v := range values {
					if !hasOption(dim, v) {
						warnings = append(warnings, fmt.Sprintf("line %d: %s value %q is not a known option", row.line, key, v))
					}
				}
			}
			if it.Attributes == nil {
				it.Attributes = make(map[string][]string)
			}
			it.Attributes[key] = values
		case strings.HasPrefix(col, prefixMeasure):
			m, err := strconv.ParseFloat(val, 64)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: %s %q is not a number", row.line, col, val))
				continue
			}
			if it.Measures == nil {
				it.Measures = make(map[string]float64)
			}
			it.Measures[strings.TrimPrefix(col, prefixMeasure)] = m
		case strings.HasPrefix(col, prefixText):
			if it.Text == nil {
				it.Text = make(map[string][]string)
			}
			it.Text[strings.TrimPrefix(col, prefixText)] = splitCell(val)
		}
	}

	// lenses search over technology names; derive them when the file only
	// carries technology ids
	if d.Kind == KindLenses && len(it.Text["technology_names"]) == 0 {
		var names []string
		for _, tech := range it.Attributes["technology"] {
			if name, ok := TechnologyNames[tech]; ok {
				names = append(names, name)
			}
		}
		if len(names) > 0 {
			if it.Text == nil {
				it.Text = make(map[string][]string)
			}
			it.Text["technology_names"] = names
		}
	}
	return it, warnings, nil
}

func parseVariant(row csvRow) (*catalog.Variant, error) {
	sku, price := row.get(colSKU), row.get(colSalePrice)
	if sku == "" && price == "" {
		return nil, nil
	}
	v := &catalog.Variant{VariantID: row.get(colVariantID), SKU: sku, IsActive: true}
	if v.VariantID == "" {
		v.VariantID = uuid.NewString()
	}
	if price != "" {
		n, err := parsePrice(price)
		if err != nil {
			return nil, fmt.Errorf("line %d: sale_price %q: %v, dropping variant", row.line, price, err)
		}
		v.SalePrice = n
	}
	if c := row.get(colColorName); c != "" {
		v.Attributes = map[string]string{"color_name": c}
	}
	if s := row.get(colVariantActive); s != "" {
		v.IsActive = parseBool(s)
	}
	v.IsPreorder = parseBool(row.get(colPreorder))
	return v, nil
}

// MaxPrice bounds imported prices so they fit the GraphQL Int scalar.
const MaxPrice = math.MaxInt32

var (
	errNegativePrice = errors.New("price must not be negative")
	errPriceTooLarge = fmt.Errorf("price must not exceed %d", MaxPrice)
)

func parsePrice(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err != nil:
		return 0, err
	case n < 0:
		return 0, errNegativePrice
	case n > MaxPrice:
		return 0, errPriceTooLarge
	}
	return n, nil
}

func hasOption(dim catalog.Dimension, id string) bool {
	for _, o := range dim.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func splitCell(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
