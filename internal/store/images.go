package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patchmarket/patch/internal/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Image table names and their per-item limits.
const (
	primaryImageTable = "item_images"
	outcomeImageTable = "outcome_images"
)

func addImage(ctx context.Context, db execer, table string, limit int, itemID int64, position int, path string) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE item_id = ?`, itemID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("counting images: %w", err)
	}
	if count >= limit {
		return fmt.Errorf("item already has %d images (limit %d)", count, limit)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO `+table+` (item_id, position, path) VALUES (?, ?, ?)`,
		itemID, position, path,
	)
	if err != nil {
		return fmt.Errorf("adding image: %w", err)
	}
	return nil
}

func listImages(ctx context.Context, db execer, table string, itemID int64) ([]model.ItemImage, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, position, path FROM `+table+`
		 WHERE item_id = ? ORDER BY position, id`, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	defer rows.Close()

	var images []model.ItemImage
	for rows.Next() {
		var img model.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.Position, &img.Path); err != nil {
			return nil, fmt.Errorf("scanning image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ListPrimaryImages returns an item's product photos in display order.
func ListPrimaryImages(ctx context.Context, db *sql.DB, itemID int64) ([]model.ItemImage, error) {
	return listImages(ctx, db, primaryImageTable, itemID)
}

// ListOutcomeImages returns an item's outcome photos in display order.
func ListOutcomeImages(ctx context.Context, db *sql.DB, itemID int64) ([]model.ItemImage, error) {
	return listImages(ctx, db, outcomeImageTable, itemID)
}

// AttachImages populates an item's Images and Outcomes fields.
func AttachImages(ctx context.Context, db *sql.DB, item *model.Item) error {
	images, err := ListPrimaryImages(ctx, db, item.ID)
	if err != nil {
		return err
	}
	outcomes, err := ListOutcomeImages(ctx, db, item.ID)
	if err != nil {
		return err
	}
	item.Images = images
	item.Outcomes = outcomes
	return nil
}
