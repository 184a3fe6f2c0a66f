package service

import (
	"Vibes/internal/cli/api"
	"Vibes/internal/cli/model"
	"context"
	"testing"
	"time"
)

func TestFeed_Offline_FallsBackToBookmarks(t *testing.T) {
	gw := &fakeGateway{fetchErr: api.ErrNetwork}
	users := &memUsers{user: &model.User{ID: "u1"}}
	bookmarks := newMemEntries()
	_ = bookmarks.Put(context.Background(), &model.Entry{
		ID: "b1", UserID: "u1", PostID: "p1",
		Vibe: model.Vibe{ID: "p1", Title: "saved"}, CreatedAt: time.Now(),
	})
	s := NewFeedService(gw, users, bookmarks, testLogger())

	vibes, fromCache, err := s.Page(context.Background(), 0, 10, "")
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if !fromCache {
		t.Fatalf("expected cache fallback")
	}
	if len(vibes) != 1 || vibes[0].Title != "saved" {
		t.Fatalf("unexpected vibes: %+v", vibes)
	}
}

func TestFeed_Offline_Anonymous_EmptyPage(t *testing.T) {
	gw := &fakeGateway{fetchErr: api.ErrNetwork}
	s := NewFeedService(gw, &memUsers{}, newMemEntries(), testLogger())

	vibes, fromCache, err := s.Page(context.Background(), 0, 10, "")
	if err != nil || !fromCache || len(vibes) != 0 {
		t.Fatalf("vibes=%v fromCache=%v err=%v", vibes, fromCache, err)
	}
}

func TestFeed_Online_PassesThrough(t *testing.T) {
	gw := &fakeGateway{}
	s := NewFeedService(gw, &memUsers{}, newMemEntries(), testLogger())

	_, fromCache, err := s.Page(context.Background(), 0, 10, "")
	if err != nil || fromCache {
		t.Fatalf("fromCache=%v err=%v", fromCache, err)
	}
}

func TestFeed_Vibe_OfflineFromBookmark(t *testing.T) {
	gw := &fakeGateway{fetchErr: api.ErrNetwork}
	users := &memUsers{user: &model.User{ID: "u1"}}
	bookmarks := newMemEntries()
	_ = bookmarks.Put(context.Background(), &model.Entry{
		ID: "b1", UserID: "u1", PostID: "p1", Vibe: model.Vibe{ID: "p1", Title: "saved"},
	})
	s := NewFeedService(gw, users, bookmarks, testLogger())

	v, err := s.Vibe(context.Background(), "p1")
	if err != nil || v.Title != "saved" {
		t.Fatalf("vibe=%+v err=%v", v, err)
	}
	// не сохранённый вайб в офлайне недоступен
	if _, err := s.Vibe(context.Background(), "p2"); err == nil {
		t.Fatalf("expected error for uncached vibe")
	}
}
