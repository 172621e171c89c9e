package fabric

import (
	"sync"
	"testing"
)

func TestChannelMesh_SendRecvSpecificSource(t *testing.T) {
	mesh := NewChannelMesh(2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := mesh[0].SendFloats(1, 0, []float32{1, 2, 3}); err != nil {
			t.Errorf("SendFloats: %v", err)
		}
	}()
	payload, from, err := mesh[1].RecvFloats(0, 0)
	if err != nil {
		t.Fatalf("RecvFloats: %v", err)
	}
	if from != 0 {
		t.Errorf("from = %d, want 0", from)
	}
	if len(payload) != 3 || payload[0] != 1 || payload[2] != 3 {
		t.Errorf("payload = %v, want [1 2 3]", payload)
	}
	<-done
}

func TestChannelMesh_SendRecvInts(t *testing.T) {
	mesh := NewChannelMesh(2)
	go mesh[0].SendInts(1, 0, []int32{-1, -1})
	payload, from, err := mesh[1].RecvInts(0, 0)
	if err != nil {
		t.Fatalf("RecvInts: %v", err)
	}
	if from != 0 || len(payload) != 2 || payload[0] != -1 || payload[1] != -1 {
		t.Errorf("got payload=%v from=%d, want [-1 -1] from 0", payload, from)
	}
}

func TestChannelMesh_AnySourceReportsSender(t *testing.T) {
	mesh := NewChannelMesh(3)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mesh[2].SendFloats(0, 0, []float32{42})
	}()
	wg.Wait()

	payload, from, err := mesh[0].RecvFloats(AnySource, 0)
	if err != nil {
		t.Fatalf("RecvFloats: %v", err)
	}
	if from != 2 {
		t.Errorf("from = %d, want 2", from)
	}
	if payload[0] != 42 {
		t.Errorf("payload[0] = %v, want 42", payload[0])
	}
}

func TestChannelMesh_FIFOPerPair(t *testing.T) {
	mesh := NewChannelMesh(2)
	go func() {
		mesh[0].SendFloats(1, 0, []float32{1})
		mesh[0].SendFloats(1, 0, []float32{2})
		mesh[0].SendFloats(1, 0, []float32{3})
	}()

	for _, want := range []float32{1, 2, 3} {
		payload, _, err := mesh[1].RecvFloats(0, 0)
		if err != nil {
			t.Fatalf("RecvFloats: %v", err)
		}
		if payload[0] != want {
			t.Errorf("payload[0] = %v, want %v", payload[0], want)
		}
	}
}

func TestChannelMesh_RankAndSize(t *testing.T) {
	mesh := NewChannelMesh(4)
	for i, f := range mesh {
		if f.Rank() != i {
			t.Errorf("mesh[%d].Rank() = %d, want %d", i, f.Rank(), i)
		}
		if f.Size() != 4 {
			t.Errorf("mesh[%d].Size() = %d, want 4", i, f.Size())
		}
	}
}

func TestChannelMesh_NowMonotonic(t *testing.T) {
	mesh := NewChannelMesh(1)
	t1 := mesh[0].Now()
	t2 := mesh[0].Now()
	if t2 < t1 {
		t.Errorf("Now() went backwards: %v then %v", t1, t2)
	}
}

func TestChannelMesh_SendCopiesPayload(t *testing.T) {
	mesh := NewChannelMesh(2)
	payload := []float32{1, 2, 3}
	go mesh[0].SendFloats(1, 0, payload)
	received, _, _ := mesh[1].RecvFloats(0, 0)

	payload[0] = 999
	if received[0] == 999 {
		t.Error("RecvFloats returned a payload aliasing the sender's slice")
	}
}
