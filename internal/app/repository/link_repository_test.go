package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sifan077/linkstore/config"
	"github.com/sifan077/linkstore/internal/app/model"
	infraSQLite "github.com/sifan077/linkstore/internal/infra/sqlite"
	"gorm.io/gorm"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infraSQLite.NewGorm(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "data", "urls.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infraSQLite.AutoMigrate(context.Background(), db, &model.Link{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// exerciseLinkRepository runs the behaviour every LinkRepository must share.
func exerciseLinkRepository(t *testing.T, repo LinkRepository) {
	t.Helper()
	ctx := context.Background()

	urls := []string{
		"https://example.com/page",
		"https://example.com/page",
		"http://user:pw@10.0.0.1:8080/a?b=c#d",
		"HTTPS://Example.COM/Mixed/Case ",
	}

	var prev int64
	for i, u := range urls {
		link := &model.Link{FullURL: u}
		if err := repo.Create(ctx, link); err != nil {
			t.Fatalf("Create(%q) returned error: %v", u, err)
		}
		if i == 0 && link.ShortID != 1 {
			t.Fatalf("expected first id to be 1, got %d", link.ShortID)
		}
		if link.ShortID <= prev {
			t.Fatalf("expected id > %d, got %d", prev, link.ShortID)
		}
		prev = link.ShortID

		got, err := repo.GetByID(ctx, link.ShortID)
		if err != nil {
			t.Fatalf("GetByID(%d) returned error: %v", link.ShortID, err)
		}
		if got.FullURL != u {
			t.Fatalf("expected %q stored verbatim, got %q", u, got.FullURL)
		}
		if got.ShortID != link.ShortID {
			t.Fatalf("expected id %d, got %d", link.ShortID, got.ShortID)
		}
	}

	for _, id := range []int64{0, 999, -1} {
		if _, err := repo.GetByID(ctx, id); !errors.Is(err, ErrLinkNotFound) {
			t.Fatalf("GetByID(%d): expected ErrLinkNotFound, got %v", id, err)
		}
	}
}

func TestLinkRepository_SQLite(t *testing.T) {
	exerciseLinkRepository(t, NewLinkRepository(newSQLiteDB(t)))
}

func TestLinkRepository_IgnoresPresetID(t *testing.T) {
	repo := NewLinkRepository(newSQLiteDB(t))
	ctx := context.Background()

	link := &model.Link{ShortID: 42, FullURL: "https://example.com"}
	if err := repo.Create(ctx, link); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if link.ShortID != 1 {
		t.Fatalf("expected engine-assigned id 1, got %d", link.ShortID)
	}
}

func TestLinkRepository_IDsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.db")
	ctx := context.Background()

	open := func() (LinkRepository, func()) {
		db, err := infraSQLite.NewGorm(config.SQLiteConfig{Path: path})
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		if err := infraSQLite.AutoMigrate(ctx, db, &model.Link{}); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		sqlDB, _ := db.DB()
		return NewLinkRepository(db), func() { _ = sqlDB.Close() }
	}

	repo, closeFn := open()
	first := &model.Link{FullURL: "https://a.example"}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	closeFn()

	repo, closeFn = open()
	defer closeFn()
	second := &model.Link{FullURL: "https://b.example"}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if second.ShortID <= first.ShortID {
		t.Fatalf("expected id after reopen > %d, got %d", first.ShortID, second.ShortID)
	}

	got, err := repo.GetByID(ctx, first.ShortID)
	if err != nil || got.FullURL != "https://a.example" {
		t.Fatalf("expected first link to persist, got %+v, %v", got, err)
	}
}

func TestLinkRepository_StorageError(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewLinkRepository(db)

	sqlDB, _ := db.DB()
	_ = sqlDB.Close()

	err := repo.Create(context.Background(), &model.Link{FullURL: "https://example.com"})
	if err == nil {
		t.Fatalf("expected error on closed database")
	}
	if errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("storage failure must not look like not-found")
	}

	if _, err := repo.GetByID(context.Background(), 1); err == nil || errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
