package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bakery_recommend/internal/model"
)

var requiredColumns = []string{"category", "name", "price", "sweetness", "tags"}

// ErrMissingColumns 表示 CSV 表头缺少必需列
var ErrMissingColumns = errors.New("menu csv is missing required columns")

// Parse 从 CSV 读取菜单
// 表头需包含 category,name,price,sweetness,tags（顺序不限，多余列忽略）
// tags 是单个字段内以逗号分隔的字符串
func Parse(r io.Reader) ([]model.MenuItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
		}
		return nil, fmt.Errorf("failed to read menu header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var items []model.MenuItem
	seen := make(map[string]int)
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read menu line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		item, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("menu line %d: %w", line, err)
		}
		if prev, dup := seen[item.Name]; dup {
			return nil, fmt.Errorf("menu line %d: duplicate item name %q (first seen on line %d)", line, item.Name, prev)
		}
		seen[item.Name] = line
		items = append(items, item)
	}

	return items, nil
}

func parseRecord(record []string, cols map[string]int) (model.MenuItem, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	item := model.MenuItem{
		Category: field("category"),
		Name:     field("name"),
		Tags:     SplitTags(field("tags")),
	}
	if item.Name == "" {
		return item, errors.New("empty name")
	}
	if !IsKnownCategory(item.Category) {
		return item, fmt.Errorf("unknown category %q", item.Category)
	}

	price, err := strconv.Atoi(field("price"))
	if err != nil {
		return item, fmt.Errorf("invalid price %q: %w", field("price"), err)
	}
	if price < 0 {
		return item, fmt.Errorf("negative price %d", price)
	}
	item.Price = price

	sweetness, err := strconv.Atoi(field("sweetness"))
	if err != nil {
		return item, fmt.Errorf("invalid sweetness %q: %w", field("sweetness"), err)
	}
	if sweetness < 0 || sweetness > 5 {
		return item, fmt.Errorf("sweetness %d not in [0,5]", sweetness)
	}
	item.Sweetness = sweetness

	return item, nil
}

// SplitTags 拆分逗号分隔的标签串，去除空白和空项
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
