package adapter

import (
	"errors"
	"testing"

	"github.com/stagelight/dmxcore/internal/infrastructure/config"
)

func boolPtr(b bool) *bool { return &b }

func testProvider() *StaticProvider {
	return NewStaticProvider([]config.AdapterConfig{
		{ID: "usb-0", Name: "Front of House", Kind: "usb-dmx"},
		{ID: "artnet-1", Name: "Stage Left Node", Kind: "artnet"},
		{ID: "broken-0", Name: "Spare", Kind: "usb-dmx", Available: boolPtr(false)},
	})
}

func TestStaticProvider_Get(t *testing.T) {
	p := testProvider()

	d, err := p.Get("usb-0")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.Name != "Front of House" {
		t.Errorf("Name = %q, want %q", d.Name, "Front of House")
	}
	if !d.Available {
		t.Error("Available = false, want true (default)")
	}

	d, err = p.Get("broken-0")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if d.Available {
		t.Error("Available = true, want false (config override)")
	}
}

func TestStaticProvider_GetNotFound(t *testing.T) {
	p := testProvider()

	_, err := p.Get("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStaticProvider_ListSorted(t *testing.T) {
	p := testProvider()

	list := p.List()
	if len(list) != 3 {
		t.Fatalf("List() len = %d, want 3", len(list))
	}
	want := []string{"artnet-1", "broken-0", "usb-0"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}
}

func TestStaticProvider_Register(t *testing.T) {
	p := testProvider()

	err := p.Register(Descriptor{ID: "loop-0", Name: "Loopback", Kind: "loopback", Available: true})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := p.Get("loop-0"); err != nil {
		t.Errorf("Get() after Register error = %v", err)
	}

	if err := p.Register(Descriptor{ID: "loop-0"}); !errors.Is(err, ErrExists) {
		t.Errorf("Register(duplicate) error = %v, want ErrExists", err)
	}

	if err := p.Register(Descriptor{}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Register(empty id) error = %v, want ErrInvalidID", err)
	}
}

func TestStaticProvider_SetAvailable(t *testing.T) {
	p := testProvider()

	if err := p.SetAvailable("usb-0", false); err != nil {
		t.Fatalf("SetAvailable() error = %v", err)
	}
	d, _ := p.Get("usb-0")
	if d.Available {
		t.Error("Available = true after SetAvailable(false)")
	}

	if err := p.SetAvailable("nope", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetAvailable(unknown) error = %v, want ErrNotFound", err)
	}
}
