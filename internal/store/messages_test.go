package store

import (
	"context"
	"errors"
	"testing"

	"github.com/patchmarket/patch/internal/db"
	"github.com/patchmarket/patch/internal/model"
)

func TestCreateMessage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	buyer := testUser(t, database, "buyer")
	item, _ := CreateItem(ctx, database, nil, testFields(t, "Brush", "2.00"))

	m, err := CreateMessage(ctx, database, item.ID, buyer.ID, "Is this still available?")
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if m.IsRead {
		t.Error("expected new message to be unread")
	}
	if m.SenderName != "buyer" {
		t.Errorf("expected resolved sender, got %q", m.SenderName)
	}
}

func TestCreateMessageEmptyContent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	buyer := testUser(t, database, "buyer")
	item, _ := CreateItem(ctx, database, nil, testFields(t, "Brush", "2.00"))

	_, err := CreateMessage(ctx, database, item.ID, buyer.ID, "   ")
	var fieldErrs model.FieldErrors
	if err == nil {
		t.Fatal("expected error for empty content")
	}
	if !errors.As(err, &fieldErrs) || fieldErrs["content"] == "" {
		t.Errorf("expected content field error, got %v", err)
	}
}

func TestCreateMessageMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	buyer := testUser(t, database, "buyer")

	_, err := CreateMessage(ctx, database, 9999, buyer.ID, "hello")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing item, got %v", err)
	}
}

func TestListItemMessagesOrdered(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	buyer := testUser(t, database, "buyer")
	seller := testUser(t, database, "seller")
	item, _ := PostItem(ctx, database, seller.ID, testFields(t, "Brush", "2.00"), nil, nil)

	CreateMessage(ctx, database, item.ID, buyer.ID, "first")
	CreateMessage(ctx, database, item.ID, seller.ID, "second")

	messages, err := ListItemMessages(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ListItemMessages: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "first" || messages[1].Content != "second" {
		t.Errorf("expected oldest-first ordering, got %+v", messages)
	}
}

func TestMarkMessagesRead(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	buyer := testUser(t, database, "buyer")
	seller := testUser(t, database, "seller")
	item, _ := PostItem(ctx, database, seller.ID, testFields(t, "Brush", "2.00"), nil, nil)

	CreateMessage(ctx, database, item.ID, buyer.ID, "hello")
	CreateMessage(ctx, database, item.ID, seller.ID, "hi there")

	if err := MarkMessagesRead(ctx, database, item.ID, seller.ID); err != nil {
		t.Fatalf("MarkMessagesRead: %v", err)
	}

	messages, _ := ListItemMessages(ctx, database, item.ID)
	for _, m := range messages {
		if m.SenderID == buyer.ID && !m.IsRead {
			t.Error("expected buyer message marked read")
		}
		if m.SenderID == seller.ID && m.IsRead {
			t.Error("seller's own message should stay unread")
		}
	}
}
