package scene

import (
	"context"
	"errors"
	"testing"

	"github.com/stagelight/dmxcore/internal/adapter"
	"github.com/stagelight/dmxcore/internal/infrastructure/config"
	"github.com/stagelight/dmxcore/internal/universe"
)

func testUniverses(t *testing.T, ids ...string) *universe.Registry {
	t.Helper()
	provider := adapter.NewStaticProvider([]config.AdapterConfig{
		{ID: "usb-0", Name: "Test", Kind: "loopback"},
	})
	r := universe.NewRegistry(provider, nil)
	for _, id := range ids {
		if err := r.Connect(id, "usb-0"); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func testStore(t *testing.T, ids ...string) (*Store, *universe.Registry) {
	t.Helper()
	u := testUniverses(t, ids...)
	return NewStore(NewMemoryRepository(), u, nil), u
}

func TestCapture_RoundTrip(t *testing.T) {
	s, u := testStore(t, "main")
	ctx := context.Background()

	if err := u.SetChannel("main", 1, 40); err != nil {
		t.Fatal(err)
	}

	sc, err := s.Capture(ctx, "look-1", []string{"main"})
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if sc.ID == "" {
		t.Error("ID not generated")
	}
	if sc.Universes["main"][1] != 40 {
		t.Errorf("captured channel 1 = %d, want 40", sc.Universes["main"][1])
	}

	// Mutate, then load the scene: pre-mutation value must come back.
	if err := u.SetChannel("main", 1, 255); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, sc.ID); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	v, _ := u.GetChannel("main", 1)
	if v != 40 {
		t.Errorf("channel 1 = %d after load, want 40", v)
	}
}

func TestCapture_Validation(t *testing.T) {
	s, _ := testStore(t, "main")
	ctx := context.Background()

	if _, err := s.Capture(ctx, "", []string{"main"}); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Capture(empty name) error = %v, want ErrInvalidName", err)
	}
	if _, err := s.Capture(ctx, "look", nil); !errors.Is(err, ErrEmptyCapture) {
		t.Errorf("Capture(no universes) error = %v, want ErrEmptyCapture", err)
	}
	if _, err := s.Capture(ctx, "look", []string{"ghost"}); !errors.Is(err, universe.ErrUniverseNotFound) {
		t.Errorf("Capture(unknown universe) error = %v, want ErrUniverseNotFound", err)
	}
}

func TestCreate_AndLoad(t *testing.T) {
	s, u := testStore(t, "main")
	ctx := context.Background()

	sc, err := s.Create(ctx, "preset", map[string]map[int]int{
		"main": {5: 100, 9: 200},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	applied, err := s.Load(ctx, sc.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	v, _ := u.GetChannel("main", 5)
	if v != 100 {
		t.Errorf("channel 5 = %d, want 100", v)
	}
}

func TestCreate_DetachedFromCaller(t *testing.T) {
	s, _ := testStore(t, "main")
	ctx := context.Background()

	input := map[string]map[int]int{"main": {1: 10}}
	sc, err := s.Create(ctx, "preset", input)
	if err != nil {
		t.Fatal(err)
	}

	input["main"][1] = 99

	got, err := s.Get(ctx, sc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Universes["main"][1] != 10 {
		t.Errorf("stored channel 1 = %d after caller mutation, want 10", got.Universes["main"][1])
	}
}

func TestLoad_SkipsMissingUniverse(t *testing.T) {
	s, u := testStore(t, "main")
	ctx := context.Background()

	sc, err := s.Create(ctx, "mixed", map[string]map[int]int{
		"main":  {1: 50},
		"ghost": {1: 77},
	})
	if err != nil {
		t.Fatal(err)
	}

	applied, err := s.Load(ctx, sc.ID)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil (missing universe skipped)", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}

	v, _ := u.GetChannel("main", 1)
	if v != 50 {
		t.Errorf("channel 1 = %d, want 50", v)
	}
}

func TestLoad_SkipsDisconnectedUniverse(t *testing.T) {
	s, u := testStore(t, "main", "aux")
	ctx := context.Background()

	sc, err := s.Create(ctx, "both", map[string]map[int]int{
		"main": {1: 10},
		"aux":  {1: 20},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := u.Disconnect("aux"); err != nil {
		t.Fatal(err)
	}

	applied, err := s.Load(ctx, sc.ID)
	if err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (aux skipped)", applied)
	}
}

func TestLoad_NotFound(t *testing.T) {
	s, _ := testStore(t, "main")

	if _, err := s.Load(context.Background(), "ghost"); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("Load(unknown) error = %v, want ErrSceneNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s, _ := testStore(t, "main")
	ctx := context.Background()

	sc, err := s.Capture(ctx, "look", []string{"main"})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, sc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, sc.ID); !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrSceneNotFound", err)
	}
}

func TestList_Sorted(t *testing.T) {
	s, _ := testStore(t, "main")
	ctx := context.Background()

	for _, name := range []string{"warm", "blackout", "interval"} {
		if _, err := s.Capture(ctx, name, []string{"main"}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	want := []string{"blackout", "interval", "warm"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
}
