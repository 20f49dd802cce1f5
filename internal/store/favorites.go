package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patchmarket/patch/internal/model"
)

// ToggleFavorite bookmarks an item for a user, or removes the bookmark
// if one exists. Returns true if the favorite was added. The insert and
// the fallback delete run in one transaction so concurrent toggles
// cannot trip over the (user, item) uniqueness constraint.
func ToggleFavorite(ctx context.Context, db *sql.DB, userID, itemID int64) (bool, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO favorites (user_id, item_id) VALUES (?, ?)
		 ON CONFLICT (user_id, item_id) DO NOTHING`,
		userID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("adding favorite: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("adding favorite: %w", err)
	}

	added := n > 0
	if !added {
		// Already favorited: the toggle removes it.
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM favorites WHERE user_id = ? AND item_id = ?`, userID, itemID,
		); err != nil {
			return false, fmt.Errorf("removing favorite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing favorite toggle: %w", err)
	}
	return added, nil
}

// IsFavorited reports whether the user has bookmarked the item.
func IsFavorited(ctx context.Context, db *sql.DB, userID, itemID int64) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ? AND item_id = ?`,
		userID, itemID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking favorite: %w", err)
	}
	return count > 0, nil
}

// ListUserFavorites returns a user's bookmarks with their items
// resolved, most recently favorited first.
func ListUserFavorites(ctx context.Context, db *sql.DB, userID int64) ([]model.Favorite, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT f.id, f.user_id, f.item_id, f.created_at, `+itemColumns+`
		 FROM favorites f JOIN items i ON i.id = f.item_id
		 LEFT JOIN users u ON u.id = i.seller_id
		 WHERE f.user_id = ? ORDER BY f.created_at DESC, f.id DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	var favorites []model.Favorite
	for rows.Next() {
		var f model.Favorite
		item := &model.Item{}
		err := rows.Scan(
			&f.ID, &f.UserID, &f.ItemID, &f.CreatedAt,
			&item.ID, &item.Name, &item.Description, &item.Price, &item.SellerID,
			&item.Major, &item.Professor, &item.Category, &item.CourseCode,
			&item.AmountUsage, &item.PaymentMethods, &item.AdditionalInfo, &item.OutcomeDescription,
			&item.CreatedAt, &item.SellerName, &item.Cover,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning favorite: %w", err)
		}
		f.Item = item
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}
