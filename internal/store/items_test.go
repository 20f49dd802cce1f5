package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/patchmarket/patch/internal/db"
	"github.com/patchmarket/patch/internal/model"
)

func testFields(t *testing.T, name, price string) model.ItemFields {
	t.Helper()
	f, errs := model.ItemForm{Name: name, Price: price}.Validate()
	if errs != nil {
		t.Fatalf("validating test fields: %v", errs)
	}
	return f
}

func testUser(t *testing.T, database *sql.DB, username string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), database, username, "x")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	f := testFields(t, "Watercolor Set", "12.50")
	item, err := CreateItem(ctx, database, nil, f)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Name != "Watercolor Set" {
		t.Errorf("expected name 'Watercolor Set', got %q", item.Name)
	}
	if item.Price.String() != "12.50" {
		t.Errorf("expected stored price 12.50, got %s", item.Price)
	}
	if item.SellerID != nil {
		t.Errorf("expected nil seller, got %d", *item.SellerID)
	}
}

func TestGetItemNotFound(t *testing.T) {
	database := db.NewTestDB(t)

	item, err := GetItem(context.Background(), database, 9999)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Error("expected nil for missing item")
	}
}

func TestNegativePriceRejected(t *testing.T) {
	_, errs := model.ItemForm{Name: "Brush", Price: "-1.00"}.Validate()
	if errs == nil || errs["price"] == "" {
		t.Error("expected price validation error for negative price")
	}

	// A sign hidden in the fraction half must not parse either.
	for _, price := range []string{"0.-9", "1.-5", "1.+5"} {
		_, errs := model.ItemForm{Name: "Brush", Price: price}.Validate()
		if errs == nil || errs["price"] == "" {
			t.Errorf("expected price validation error for %q", price)
		}
	}
}

func TestInvalidChoiceRejected(t *testing.T) {
	_, errs := model.ItemForm{Name: "Brush", Price: "1.00", Major: "astrology"}.Validate()
	if errs == nil || errs["major"] == "" {
		t.Error("expected major validation error for unknown value")
	}

	_, errs = model.ItemForm{Name: "Brush", Price: "1.00", Category: "starships"}.Validate()
	if errs == nil || errs["category"] == "" {
		t.Error("expected category validation error for unknown value")
	}
}

func TestSearchItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	f, _ := model.ItemForm{Name: "Gouache", Price: "8.00", CourseCode: "DSD-3003-B", Major: "design", Category: "paints"}.Validate()
	if _, err := CreateItem(ctx, database, nil, f); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	f2, _ := model.ItemForm{Name: "Charcoal", Price: "3.00", Major: "fine_arts", Category: "pencils"}.Validate()
	if _, err := CreateItem(ctx, database, nil, f2); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Substring present only in course_code.
	results, err := SearchItems(ctx, database, "dsd-3003", "", "")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Gouache" {
		t.Errorf("expected Gouache by course code, got %+v", results)
	}

	// Substring present in no field.
	results, err = SearchItems(ctx, database, "xyzzy", "", "")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty result set, got %d items", len(results))
	}

	// Filters combine with AND.
	results, _ = SearchItems(ctx, database, "", "design", "pencils")
	if len(results) != 0 {
		t.Errorf("expected no item matching design AND pencils, got %d", len(results))
	}
	results, _ = SearchItems(ctx, database, "gouache", "design", "paints")
	if len(results) != 1 {
		t.Errorf("expected 1 item matching all predicates, got %d", len(results))
	}
}

func TestSearchOrderNewestFirst(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateItem(ctx, database, nil, testFields(t, "Older", "1.00"))
	CreateItem(ctx, database, nil, testFields(t, "Newer", "2.00"))

	results, err := SearchItems(ctx, database, "", "", "")
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(results) != 2 || results[0].Name != "Newer" {
		t.Errorf("expected newest first, got %+v", results)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, nil, testFields(t, "Easel", "20.00"))

	f := testFields(t, "Easel", "10.00")
	if err := UpdateItem(ctx, database, item.ID, f); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Price.String() != "10.00" {
		t.Errorf("expected updated price 10.00, got %s", got.Price)
	}
}

func TestUpdateMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	err := UpdateItem(context.Background(), database, 9999, testFields(t, "X", "1.00"))
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItemCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	seller := testUser(t, database, "seller")
	buyer := testUser(t, database, "buyer")

	item, err := PostItem(ctx, database, seller.ID, testFields(t, "Ink Set", "5.00"),
		[]string{"goods_images/a.jpg"}, []string{"outcome_images/b.jpg"})
	if err != nil {
		t.Fatalf("PostItem: %v", err)
	}

	if _, err := CreateMessage(ctx, database, item.ID, buyer.ID, "still available?"); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if _, err := ToggleFavorite(ctx, database, buyer.ID, item.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}

	paths, err := DeleteItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 media paths returned, got %d", len(paths))
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Error("expected item gone after delete")
	}

	// No orphans remain.
	for _, q := range []string{
		`SELECT COUNT(*) FROM item_images`,
		`SELECT COUNT(*) FROM outcome_images`,
		`SELECT COUNT(*) FROM messages`,
		`SELECT COUNT(*) FROM favorites`,
	} {
		var count int
		if err := database.QueryRowContext(ctx, q).Scan(&count); err != nil {
			t.Fatalf("counting orphans: %v", err)
		}
		if count != 0 {
			t.Errorf("expected no orphan rows for %q, got %d", q, count)
		}
	}
}

func TestListRelatedItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	f1, _ := model.ItemForm{Name: "Oil Paints", Price: "15.00", Category: "paints"}.Validate()
	f2, _ := model.ItemForm{Name: "Acrylics", Price: "9.00", Category: "paints"}.Validate()
	f3, _ := model.ItemForm{Name: "Camera", Price: "99.00", Category: "filming"}.Validate()

	item, _ := CreateItem(ctx, database, nil, f1)
	CreateItem(ctx, database, nil, f2)
	CreateItem(ctx, database, nil, f3)

	related, err := ListRelatedItems(ctx, database, item, 4)
	if err != nil {
		t.Fatalf("ListRelatedItems: %v", err)
	}
	if len(related) != 1 || related[0].Name != "Acrylics" {
		t.Errorf("expected only Acrylics related, got %+v", related)
	}
}
