package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

func TestMarkReadOwnership(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, "user-1", "hello")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Another user cannot mark it, and cannot tell it exists.
	if err := svc.MarkRead(ctx, created.ID, "user-2"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("foreign mark err = %v, want ErrNotificationNotFound", err)
	}

	if err := svc.MarkRead(ctx, created.ID, "user-1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	// Marking again is not an error.
	if err := svc.MarkRead(ctx, created.ID, "user-1"); err != nil {
		t.Fatalf("second mark read: %v", err)
	}

	feed, err := svc.ListForUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(feed) != 1 || !feed[0].IsRead {
		t.Fatalf("unexpected feed: %+v", feed)
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	repo := newStubNotificationRepo()
	svc := NewNotificationService(repo, zap.NewNop())

	if err := svc.MarkRead(context.Background(), "no-such-id", "user-1"); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("err = %v, want ErrNotificationNotFound", err)
	}
}
