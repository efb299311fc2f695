package universe

import (
	"errors"
	"sync"
	"testing"
)

func TestChannelStore_SetGet(t *testing.T) {
	s := NewChannelStore()

	if err := s.Set(1, 255); err != nil {
		t.Fatalf("Set(1, 255) error = %v", err)
	}
	if err := s.Set(512, 1); err != nil {
		t.Fatalf("Set(512, 1) error = %v", err)
	}

	v, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if v != 255 {
		t.Errorf("Get(1) = %d, want 255", v)
	}

	v, _ = s.Get(512)
	if v != 1 {
		t.Errorf("Get(512) = %d, want 1", v)
	}

	// Unwritten channels read as zero.
	v, _ = s.Get(256)
	if v != 0 {
		t.Errorf("Get(256) = %d, want 0", v)
	}
}

func TestChannelStore_Validation(t *testing.T) {
	s := NewChannelStore()

	tests := []struct {
		name    string
		channel int
		value   int
		wantErr error
	}{
		{"channel zero", 0, 100, ErrChannelOutOfRange},
		{"channel negative", -1, 100, ErrChannelOutOfRange},
		{"channel too high", 513, 100, ErrChannelOutOfRange},
		{"value negative", 10, -1, ErrValueOutOfRange},
		{"value too high", 10, 256, ErrValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(tt.channel, tt.value); !errors.Is(err, tt.wantErr) {
				t.Errorf("Set(%d, %d) error = %v, want %v", tt.channel, tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestChannelStore_SetManySkipsInvalid(t *testing.T) {
	s := NewChannelStore()

	// Bad entries are skipped; good ones still land.
	applied := s.SetMany(map[int]int{5: 100, 600: 10, 9: 200, 12: 999})
	if applied != 2 {
		t.Fatalf("SetMany() applied = %d, want 2", applied)
	}

	v, _ := s.Get(5)
	if v != 100 {
		t.Errorf("Get(5) = %d, want 100", v)
	}
	v, _ = s.Get(9)
	if v != 200 {
		t.Errorf("Get(9) = %d, want 200", v)
	}
	v, _ = s.Get(12)
	if v != 0 {
		t.Errorf("Get(12) = %d after skipped entry, want 0", v)
	}
}

func TestChannelStore_SetManyEmpty(t *testing.T) {
	s := NewChannelStore()

	if applied := s.SetMany(nil); applied != 0 {
		t.Errorf("SetMany(nil) applied = %d, want 0", applied)
	}
	if !s.LastUpdate().IsZero() {
		t.Error("LastUpdate() stamped by empty batch")
	}
}

func TestChannelStore_SetManyAllInvalid(t *testing.T) {
	s := NewChannelStore()

	if applied := s.SetMany(map[int]int{0: 1, 513: 1, 5: -4}); applied != 0 {
		t.Errorf("SetMany() applied = %d, want 0", applied)
	}
	if !s.LastUpdate().IsZero() {
		t.Error("LastUpdate() stamped by all-invalid batch")
	}
}

func TestChannelStore_Snapshot(t *testing.T) {
	s := NewChannelStore()
	if applied := s.SetMany(map[int]int{1: 10, 512: 20}); applied != 2 {
		t.Fatalf("SetMany() applied = %d, want 2", applied)
	}

	snap := s.Snapshot()
	if snap[0] != 10 {
		t.Errorf("snapshot[0] = %d, want 10", snap[0])
	}
	if snap[511] != 20 {
		t.Errorf("snapshot[511] = %d, want 20", snap[511])
	}

	// Snapshot is a copy; mutating it does not touch the store.
	snap[0] = 99
	v, _ := s.Get(1)
	if v != 10 {
		t.Errorf("Get(1) = %d after snapshot mutation, want 10", v)
	}
}

func TestChannelStore_LastUpdate(t *testing.T) {
	s := NewChannelStore()

	if !s.LastUpdate().IsZero() {
		t.Error("LastUpdate() non-zero before first write")
	}

	if err := s.Set(1, 1); err != nil {
		t.Fatal(err)
	}
	if s.LastUpdate().IsZero() {
		t.Error("LastUpdate() zero after write")
	}
}

func TestChannelStore_ConcurrentWrites(t *testing.T) {
	s := NewChannelStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for ch := 1; ch <= NumChannels; ch++ {
				_ = s.Set(ch, n*10)
			}
		}(i)
	}
	wg.Wait()

	// Every channel must hold one of the written values.
	snap := s.Snapshot()
	for i, v := range snap {
		if v%10 != 0 || v > 150 {
			t.Fatalf("channel %d = %d, not a written value", i+1, v)
		}
	}
}
