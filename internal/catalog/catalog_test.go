package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bakery_recommend/internal/model"
)

const sampleMenu = `category,name,price,sweetness,tags,image
bread,Salt Roll,3200,1,"#salty, #crispy,#popular",roll.png
dessert,Brownie,4500,5,"#sweet,#choco",
coffee,Americano,4000,0,,

tea,Earl Grey,4500,0,"",tea.png
`

func TestParse(t *testing.T) {
	items, err := Parse(strings.NewReader(sampleMenu))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d", len(items))
	}
	if diff := cmp.Diff([]string{"#salty", "#crispy", "#popular"}, items[0].Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if items[1].Price != 4500 || items[1].Sweetness != 5 || items[1].Category != "dessert" {
		t.Errorf("unexpected item: %+v", items[1])
	}
	if len(items[2].Tags) != 0 {
		t.Errorf("expected empty tag set, got %v", items[2].Tags)
	}
}

func TestParseColumnOrderIndependent(t *testing.T) {
	csv := "name,tags,sweetness,price,category\nRoll,#salty,1,3000,bread\n"
	items, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if items[0].Name != "Roll" || items[0].Price != 3000 || items[0].Category != "bread" {
		t.Errorf("unexpected item: %+v", items[0])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{"empty file", "", "missing required columns"},
		{"missing columns", "category,name,price\nbread,Roll,100\n", "sweetness, tags"},
		{"bad price", "category,name,price,sweetness,tags\nbread,Roll,abc,1,\n", "invalid price"},
		{"negative price", "category,name,price,sweetness,tags\nbread,Roll,-5,1,\n", "negative price"},
		{"sweetness range", "category,name,price,sweetness,tags\nbread,Roll,100,6,\n", "not in [0,5]"},
		{"unknown category", "category,name,price,sweetness,tags\npizza,Slice,100,1,\n", "unknown category"},
		{"empty name", "category,name,price,sweetness,tags\nbread,,100,1,\n", "empty name"},
		{"duplicate name", "category,name,price,sweetness,tags\nbread,Roll,100,1,\nbread,Roll,200,2,\n", "duplicate item name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.csv))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}

	_, err := Parse(strings.NewReader("category,name\n"))
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("expected ErrMissingColumns, got %v", err)
	}
}

func TestLoadAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.csv")
	if err := os.WriteFile(path, []byte(sampleMenu), 0644); err != nil {
		t.Fatalf("failed to write menu: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d", c.Len())
	}

	item, err := c.Get("Brownie")
	if err != nil || item.Price != 4500 {
		t.Errorf("Get(Brownie) = %+v, %v", item, err)
	}
	if _, err := c.Get("Bagel"); err == nil {
		t.Error("expected not found error")
	}

	bakery := c.Filter(BakeryCategories...)
	if len(bakery) != 2 || bakery[0].Name != "Salt Roll" || bakery[1].Name != "Brownie" {
		t.Errorf("Filter(bakery) = %+v", bakery)
	}
	if got := c.Filter(CategoryTea); len(got) != 1 {
		t.Errorf("Filter(tea) = %+v", got)
	}

	items := c.Items()
	items[0].Name = "changed"
	if again, _ := c.Get("Salt Roll"); again.Name != "Salt Roll" {
		t.Error("Items() must not expose internal storage")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNewKeepsEmptyTags(t *testing.T) {
	c := New([]model.MenuItem{
		{Category: CategoryCoffee, Name: "Espresso", Price: 3500},
		{Category: CategoryTea, Name: "Earl Grey", Price: 4500, Tags: []string{}},
	})
	for _, it := range c.Items() {
		if it.Tags == nil {
			t.Errorf("%s: Tags is nil, want empty slice", it.Name)
		}
	}
}

func TestCategoryGroups(t *testing.T) {
	if !IsBakery(CategoryDessert) || IsBakery(CategoryCoffee) {
		t.Error("IsBakery mismatch")
	}
	if !IsDrink(CategoryTea) || IsDrink(CategoryBread) {
		t.Error("IsDrink mismatch")
	}
	if IsKnownCategory("pizza") {
		t.Error("pizza should be unknown")
	}
}
