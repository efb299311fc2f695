package scene

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stagelight/dmxcore/internal/infrastructure/config"
	"github.com/stagelight/dmxcore/internal/infrastructure/database"
)

func testSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Enabled:     true,
		Path:        filepath.Join(t.TempDir(), "scenes.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo, err := NewSQLiteRepository(db.DB)
	if err != nil {
		t.Fatalf("creating repository: %v", err)
	}
	return repo
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := testSQLiteRepo(t)
	ctx := context.Background()

	sc := &Scene{
		ID:        "scene-1",
		Name:      "warm wash",
		CreatedAt: time.Now().UTC(),
		Universes: map[string]map[int]int{
			"main": {1: 255, 12: 128},
			"aux":  {5: 10},
		},
	}
	if err := repo.Save(ctx, sc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.GetByID(ctx, "scene-1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "warm wash" {
		t.Errorf("Name = %q, want %q", got.Name, "warm wash")
	}
	if got.Universes["main"][12] != 128 {
		t.Errorf("main[12] = %d, want 128", got.Universes["main"][12])
	}
	if got.Universes["aux"][5] != 10 {
		t.Errorf("aux[5] = %d, want 10", got.Universes["aux"][5])
	}
}

func TestSQLiteRepository_SaveOverwrites(t *testing.T) {
	repo := testSQLiteRepo(t)
	ctx := context.Background()

	sc := &Scene{
		ID:        "scene-1",
		Name:      "v1",
		CreatedAt: time.Now().UTC(),
		Universes: map[string]map[int]int{"main": {1: 1}},
	}
	if err := repo.Save(ctx, sc); err != nil {
		t.Fatal(err)
	}

	sc.Name = "v2"
	sc.Universes["main"][1] = 2
	if err := repo.Save(ctx, sc); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetByID(ctx, "scene-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "v2" || got.Universes["main"][1] != 2 {
		t.Errorf("got %q/%d after overwrite, want v2/2", got.Name, got.Universes["main"][1])
	}
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo := testSQLiteRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "ghost"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("GetByID(unknown) error = %v, want ErrSceneNotFound", err)
	}
	if err := repo.Delete(ctx, "ghost"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrSceneNotFound", err)
	}
}

func TestSQLiteRepository_ListAndDelete(t *testing.T) {
	repo := testSQLiteRepo(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a"} {
		sc := &Scene{
			ID:        id,
			Name:      id,
			CreatedAt: time.Now().UTC(),
			Universes: map[string]map[int]int{"main": {1: 1}},
		}
		if err := repo.Save(ctx, sc); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Errorf("List() = %v, want [a b] sorted by name", list)
	}

	if err := repo.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	list, _ = repo.List(ctx)
	if len(list) != 1 {
		t.Errorf("List() len = %d after delete, want 1", len(list))
	}
}
