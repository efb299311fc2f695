package universe

import (
	"testing"
)

func TestEncodeFrame_Blackout(t *testing.T) {
	r := testRegistry()
	if err := r.Connect("main", "usb-0"); err != nil {
		t.Fatal(err)
	}

	frame, err := r.EncodeFrame("main")
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}
	if len(frame) != FrameSize {
		t.Fatalf("frame length = %d, want %d", len(frame), FrameSize)
	}
	for i, b := range frame {
		if b != 0 {
			t.Fatalf("frame[%d] = %d, want 0 (blackout)", i, b)
		}
	}
}

func TestEncodeFrame_ChannelsInOrder(t *testing.T) {
	r := testRegistry()
	if err := r.Connect("main", "usb-0"); err != nil {
		t.Fatal(err)
	}
	applied, err := r.SetChannels("main", map[int]int{5: 100, 9: 200, 512: 255})
	if err != nil {
		t.Fatal(err)
	}
	if applied != 3 {
		t.Fatalf("SetChannels() applied = %d, want 3", applied)
	}

	frame, err := r.EncodeFrame("main")
	if err != nil {
		t.Fatalf("EncodeFrame() error = %v", err)
	}

	if frame[0] != StartCode {
		t.Errorf("frame[0] = %#x, want %#x (start code)", frame[0], StartCode)
	}
	if frame[5] != 100 {
		t.Errorf("frame[5] = %d, want 100", frame[5])
	}
	if frame[9] != 200 {
		t.Errorf("frame[9] = %d, want 200", frame[9])
	}
	if frame[512] != 255 {
		t.Errorf("frame[512] = %d, want 255", frame[512])
	}
}

func TestEncodeFrame_IsolatedFromStore(t *testing.T) {
	r := testRegistry()
	if err := r.Connect("main", "usb-0"); err != nil {
		t.Fatal(err)
	}
	if err := r.SetChannel("main", 1, 10); err != nil {
		t.Fatal(err)
	}

	frame, err := r.EncodeFrame("main")
	if err != nil {
		t.Fatal(err)
	}

	// Mutating an encoded frame must not leak into channel state.
	frame[1] = 222
	v, _ := r.GetChannel("main", 1)
	if v != 10 {
		t.Errorf("GetChannel(1) = %d after frame mutation, want 10", v)
	}
}
