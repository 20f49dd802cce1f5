package store

import (
	"context"
	"testing"

	"github.com/patchmarket/patch/internal/db"
)

func TestToggleFavoriteRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "buyer")
	item, _ := CreateItem(ctx, database, nil, testFields(t, "Pastels", "7.00"))

	added, err := ToggleFavorite(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if !added {
		t.Error("expected first toggle to add")
	}

	fav, err := IsFavorited(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("IsFavorited: %v", err)
	}
	if !fav {
		t.Error("expected item to be favorited")
	}

	added, err = ToggleFavorite(ctx, database, user.ID, item.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if added {
		t.Error("expected second toggle to remove")
	}

	fav, _ = IsFavorited(ctx, database, user.ID, item.ID)
	if fav {
		t.Error("expected favorite removed after double toggle")
	}
}

func TestListUserFavorites(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := testUser(t, database, "buyer")
	other := testUser(t, database, "other")

	first, _ := CreateItem(ctx, database, nil, testFields(t, "First", "1.00"))
	second, _ := CreateItem(ctx, database, nil, testFields(t, "Second", "2.00"))

	ToggleFavorite(ctx, database, user.ID, first.ID)
	ToggleFavorite(ctx, database, user.ID, second.ID)
	ToggleFavorite(ctx, database, other.ID, first.ID)

	favorites, err := ListUserFavorites(ctx, database, user.ID)
	if err != nil {
		t.Fatalf("ListUserFavorites: %v", err)
	}
	if len(favorites) != 2 {
		t.Fatalf("expected 2 favorites, got %d", len(favorites))
	}
	for _, f := range favorites {
		if f.Item == nil || f.Item.Name == "" {
			t.Errorf("expected resolved item on favorite %d", f.ID)
		}
	}
}
