package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/patchmarket/patch/internal/model"
)

// itemColumns are the item fields selected by every item query, with
// the seller username and cover image joined in.
const itemColumns = `i.id, i.name, i.description, i.price_cents, i.seller_id,
	i.major, i.professor, i.category, i.course_code,
	i.amount_usage, i.payment_methods, i.additional_info, i.outcome_description,
	i.created_at, COALESCE(u.username, '') AS seller_name,
	COALESCE((SELECT path FROM item_images WHERE item_id = i.id ORDER BY position LIMIT 1), '') AS cover`

const itemFrom = ` FROM items i LEFT JOIN users u ON u.id = i.seller_id`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	item := &model.Item{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price, &item.SellerID,
		&item.Major, &item.Professor, &item.Category, &item.CourseCode,
		&item.AmountUsage, &item.PaymentMethods, &item.AdditionalInfo, &item.OutcomeDescription,
		&item.CreatedAt, &item.SellerName, &item.Cover,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func collectItems(rows *sql.Rows) ([]model.Item, error) {
	defer rows.Close()
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// CreateItem creates a new item. SellerID may be nil for records
// imported without an owner.
func CreateItem(ctx context.Context, db *sql.DB, sellerID *int64, f model.ItemFields) (*model.Item, error) {
	result, err := db.ExecContext(ctx,
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

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns all items, newest first.
func ListItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+` ORDER BY i.created_at DESC, i.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return collectItems(rows)
}

// ListSellerItems returns all items owned by the given user, newest first.
func ListSellerItems(ctx context.Context, db *sql.DB, sellerID int64) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE i.seller_id = ?
		 ORDER BY i.created_at DESC, i.id DESC`, sellerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing seller items: %w", err)
	}
	return collectItems(rows)
}

// SearchItems returns items matching the given predicates, newest first.
// The free-text query matches a case-insensitive substring of name,
// description, professor, or course code. Major and category narrow the
// result further; all supplied predicates are AND-combined.
func SearchItems(ctx context.Context, db *sql.DB, query, major, category string) ([]model.Item, error) {
	var conds []string
	var args []any

	if query != "" {
		// instr avoids LIKE wildcard injection from user input.
		conds = append(conds,
			`(instr(lower(i.name), ?) > 0 OR instr(lower(i.description), ?) > 0
			  OR instr(lower(i.professor), ?) > 0 OR instr(lower(i.course_code), ?) > 0)`)
		q := strings.ToLower(query)
		args = append(args, q, q, q, q)
	}
	if major != "" {
		conds = append(conds, `i.major = ?`)
		args = append(args, major)
	}
	if category != "" {
		conds = append(conds, `i.category = ?`)
		args = append(args, category)
	}

	sqlStr := `SELECT ` + itemColumns + itemFrom
	if len(conds) > 0 {
		sqlStr += ` WHERE ` + strings.Join(conds, " AND ")
	}
	sqlStr += ` ORDER BY i.created_at DESC, i.id DESC`

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	return collectItems(rows)
}

// ListRelatedItems returns up to limit items sharing the given item's
// category or major, excluding the item itself.
func ListRelatedItems(ctx context.Context, db *sql.DB, item *model.Item, limit int) ([]model.Item, error) {
	var conds []string
	var args []any

	if item.Category != "" {
		conds = append(conds, `i.category = ?`)
		args = append(args, item.Category)
	}
	if item.Major != "" {
		conds = append(conds, `i.major = ?`)
		args = append(args, item.Major)
	}
	if len(conds) == 0 {
		return nil, nil
	}
	args = append(args, item.ID, limit)

	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+itemFrom+` WHERE (`+strings.Join(conds, " OR ")+`)
		 AND i.id != ? ORDER BY i.created_at DESC, i.id DESC LIMIT ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("listing related items: %w", err)
	}
	return collectItems(rows)
}

// UpdateItem replaces an item's fields.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, f model.ItemFields) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, price_cents = ?, major = ?,
		        professor = ?, category = ?, course_code = ?, amount_usage = ?,
		        payment_methods = ?, additional_info = ?, outcome_description = ?
		 WHERE id = ?`,
		f.Name, f.Description, int64(f.Price), f.Major,
		f.Professor, f.Category, f.CourseCode, f.AmountUsage,
		f.PaymentMethods, f.AdditionalInfo, f.OutcomeDescription, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item. Its images, messages, and favorites are
// removed by foreign-key cascade. The stored media paths are returned
// so the caller can delete the files.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) ([]string, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	paths, err := itemMediaPaths(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("deleting item: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item deletion: %w", err)
	}
	return paths, nil
}

// itemMediaPaths collects the media paths of every image attached to an item.
func itemMediaPaths(ctx context.Context, tx *sql.Tx, itemID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT path FROM item_images WHERE item_id = ?
		 UNION ALL
		 SELECT path FROM outcome_images WHERE item_id = ?`, itemID, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("collecting media paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning media path: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
