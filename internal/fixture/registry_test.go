package fixture

import (
	"errors"
	"testing"

	"github.com/stagelight/dmxcore/internal/universe"
)

// mockUniverses implements ChannelWriter over a plain map.
type mockUniverses struct {
	connected map[string]bool
	writes    []map[int]int
}

func (m *mockUniverses) SetChannels(universeID string, values map[int]int) (int, error) {
	if !m.connected[universeID] {
		return 0, universe.ErrUniverseNotFound
	}
	copied := make(map[int]int, len(values))
	applied := 0
	for ch, v := range values {
		copied[ch] = v
		if ch >= 1 && ch <= universe.NumChannels && v >= 0 && v <= universe.MaxValue {
			applied++
		}
	}
	m.writes = append(m.writes, copied)
	return applied, nil
}

func (m *mockUniverses) IsConnected(universeID string) bool {
	return m.connected[universeID]
}

func testRegistry() (*Registry, *mockUniverses) {
	mock := &mockUniverses{connected: map[string]bool{"main": true}}
	return NewRegistry(mock), mock
}

func TestDefine(t *testing.T) {
	r, _ := testRegistry()

	f, err := r.Define("main", "par-1", 10, 3, map[string]string{"gel": "red"})
	if err != nil {
		t.Fatalf("Define() error = %v", err)
	}
	if f.ID == "" {
		t.Error("ID not generated")
	}
	if f.StartChannel != 10 || f.ChannelCount != 3 {
		t.Errorf("range = %d+%d, want 10+3", f.StartChannel, f.ChannelCount)
	}
	if f.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestDefine_Validation(t *testing.T) {
	r, _ := testRegistry()

	tests := []struct {
		name         string
		universeID   string
		fixtureName  string
		startChannel int
		channelCount int
		wantErr      error
	}{
		{"empty name", "main", "", 1, 1, ErrInvalidName},
		{"start zero", "main", "f", 0, 1, ErrInvalidRange},
		{"count zero", "main", "f", 1, 0, ErrInvalidRange},
		{"range overflows", "main", "f", 510, 4, ErrInvalidRange},
		{"unknown universe", "ghost", "f", 1, 1, universe.ErrUniverseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Define(tt.universeID, tt.fixtureName, tt.startChannel, tt.channelCount, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Define() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefine_RangeAtBoundary(t *testing.T) {
	r, _ := testRegistry()

	// 510..512 fits exactly.
	if _, err := r.Define("main", "edge", 510, 3, nil); err != nil {
		t.Errorf("Define(510, 3) error = %v, want nil", err)
	}
}

func TestControl(t *testing.T) {
	r, mock := testRegistry()

	f, err := r.Define("main", "par-1", 10, 3, nil)
	if err != nil {
		t.Fatal(err)
	}

	applied, err := r.Control(f.ID, []int{255, 128, 0})
	if err != nil {
		t.Fatalf("Control() error = %v", err)
	}
	if applied != 3 {
		t.Errorf("applied = %d, want 3", applied)
	}

	if len(mock.writes) != 1 {
		t.Fatalf("writes = %d, want 1", len(mock.writes))
	}
	want := map[int]int{10: 255, 11: 128, 12: 0}
	for ch, v := range want {
		if mock.writes[0][ch] != v {
			t.Errorf("write[%d] = %d, want %d", ch, mock.writes[0][ch], v)
		}
	}

	// Last values are cached on the fixture.
	got, err := r.Get(f.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.LastValues) != 3 || got.LastValues[0] != 255 {
		t.Errorf("LastValues = %v, want [255 128 0]", got.LastValues)
	}
}

func TestControl_Errors(t *testing.T) {
	r, mock := testRegistry()
	f, err := r.Define("main", "par-1", 10, 2, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Control("ghost", []int{1}); !errors.Is(err, ErrFixtureNotFound) {
		t.Errorf("Control(unknown) error = %v, want ErrFixtureNotFound", err)
	}
	if _, err := r.Control(f.ID, []int{1, 2, 3}); !errors.Is(err, ErrTooManyValues) {
		t.Errorf("Control(too many) error = %v, want ErrTooManyValues", err)
	}

	// Universe disconnects under the fixture.
	mock.connected["main"] = false
	if _, err := r.Control(f.ID, []int{1}); !errors.Is(err, universe.ErrUniverseNotFound) {
		t.Errorf("Control(disconnected) error = %v, want ErrUniverseNotFound", err)
	}
}

func TestGet_CopyIsolation(t *testing.T) {
	r, _ := testRegistry()
	f, err := r.Define("main", "par-1", 1, 1, map[string]string{"k": "v"})
	if err != nil {
		t.Fatal(err)
	}

	got, _ := r.Get(f.ID)
	got.Metadata["k"] = "mutated"
	got.Name = "mutated"

	again, _ := r.Get(f.ID)
	if again.Metadata["k"] != "v" {
		t.Error("metadata mutation leaked into registry")
	}
	if again.Name != "par-1" {
		t.Error("name mutation leaked into registry")
	}
}

func TestList_FilterAndSort(t *testing.T) {
	r, mock := testRegistry()
	mock.connected["aux"] = true

	for _, spec := range []struct {
		universe string
		name     string
	}{
		{"main", "zoom"},
		{"main", "apex"},
		{"aux", "wash"},
	} {
		if _, err := r.Define(spec.universe, spec.name, 1, 1, nil); err != nil {
			t.Fatal(err)
		}
	}

	main := r.List("main")
	if len(main) != 2 {
		t.Fatalf("List(main) len = %d, want 2", len(main))
	}
	if main[0].Name != "apex" || main[1].Name != "zoom" {
		t.Errorf("List(main) order = [%s %s], want [apex zoom]", main[0].Name, main[1].Name)
	}

	all := r.List("")
	if len(all) != 3 {
		t.Errorf("List(\"\") len = %d, want 3", len(all))
	}
}

func TestDelete(t *testing.T) {
	r, _ := testRegistry()
	f, err := r.Define("main", "par-1", 1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Delete(f.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := r.Get(f.ID); !errors.Is(err, ErrFixtureNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrFixtureNotFound", err)
	}
	if err := r.Delete(f.ID); !errors.Is(err, ErrFixtureNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrFixtureNotFound", err)
	}
}

func TestCountByUniverse(t *testing.T) {
	r, mock := testRegistry()
	mock.connected["aux"] = true

	for i := 0; i < 3; i++ {
		if _, err := r.Define("main", "f", 1, 1, nil); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := r.Define("aux", "g", 1, 1, nil); err != nil {
		t.Fatal(err)
	}

	if n := r.CountByUniverse("main"); n != 3 {
		t.Errorf("CountByUniverse(main) = %d, want 3", n)
	}
	if n := r.CountByUniverse("ghost"); n != 0 {
		t.Errorf("CountByUniverse(ghost) = %d, want 0", n)
	}
}
