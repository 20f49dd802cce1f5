package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/patchmarket/patch/internal/model"
)

// PostItem creates an item owned by sellerID and attaches the supplied
// media paths in one transaction. Only the first model.MaxItemImages
// primary paths and model.MaxOutcomeImages outcome paths are stored,
// with positions 0..n-1; excess entries are silently dropped.
func PostItem(ctx context.Context, db *sql.DB, sellerID int64, f model.ItemFields, primaryPaths, outcomePaths []string) (*model.Item, error) {
	if len(primaryPaths) > model.MaxItemImages {
		primaryPaths = primaryPaths[:model.MaxItemImages]
	}
	if len(outcomePaths) > model.MaxOutcomeImages {
		outcomePaths = outcomePaths[:model.MaxOutcomeImages]
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO items (name, description, price_cents, seller_id, major, professor,
		                    category, course_code, amount_usage, payment_methods,
		                    additional_info, outcome_description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Name, f.Description, int64(f.Price), sellerID, f.Major, f.Professor,
		f.Category, f.CourseCode, f.AmountUsage, f.PaymentMethods,
		f.AdditionalInfo, f.OutcomeDescription,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	itemID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	for i, path := range primaryPaths {
		if err := addImage(ctx, tx, primaryImageTable, model.MaxItemImages, itemID, i, path); err != nil {
			return nil, err
		}
	}
	for i, path := range outcomePaths {
		if err := addImage(ctx, tx, outcomeImageTable, model.MaxOutcomeImages, itemID, i, path); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item post: %w", err)
	}

	return GetItem(ctx, db, itemID)
}

// checkOwnership enforces the seller-only rule: an item owned by another
// user may not be modified. Items with no recorded seller predate
// ownership tracking and may be modified by any authenticated user.
func checkOwnership(item *model.Item, userID int64) error {
	if item == nil {
		return ErrNotFound
	}
	if item.SellerID != nil && *item.SellerID != userID {
		return ErrPermissionDenied
	}
	return nil
}

// EditItem applies validated field updates to an item on behalf of userID.
func EditItem(ctx context.Context, db *sql.DB, userID, itemID int64, f model.ItemFields) error {
	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return err
	}
	if err := checkOwnership(item, userID); err != nil {
		return err
	}
	return UpdateItem(ctx, db, itemID, f)
}

// DeleteOwnedItem removes an item on behalf of userID, cascading to its
// images, messages, and favorites. Returns the media paths of deleted
// images for file cleanup.
func DeleteOwnedItem(ctx context.Context, db *sql.DB, userID, itemID int64) ([]string, error) {
	item, err := GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	if err := checkOwnership(item, userID); err != nil {
		return nil, err
	}
	return DeleteItem(ctx, db, itemID)
}
