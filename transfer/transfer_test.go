package transfer

import (
	"sync"
	"testing"

	"github.com/gogpu/paint"
)

func lazy() paint.Image {
	return paint.NewLazyImage([]byte("png bytes"), 4, 4)
}

func TestPutGet(t *testing.T) {
	c := New(0)
	a, b := lazy(), lazy()

	idA, ok := c.Put(a)
	if !ok {
		t.Fatal("Put(a) failed")
	}
	idB, ok := c.Put(b)
	if !ok {
		t.Fatal("Put(b) failed")
	}
	if idA == idB {
		t.Errorf("distinct images share id %d", idA)
	}
	if again, _ := c.Put(a); again != idA {
		t.Errorf("second Put(a) = %d, want %d", again, idA)
	}

	got, ok := c.Get(idB)
	if !ok || !got.SameImage(b) {
		t.Errorf("Get(%d) = %v, %v", idB, got.ID(), ok)
	}
	if _, ok := c.Get(999); ok {
		t.Error("Get of unknown id succeeded")
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestPutZeroImage(t *testing.T) {
	c := New(4)
	if _, ok := c.Put(paint.Image{}); ok {
		t.Error("Put of the zero image succeeded")
	}
}

func TestEviction(t *testing.T) {
	c := New(2)
	a, b, d := lazy(), lazy(), lazy()
	idA, _ := c.Put(a)
	c.Put(b)
	c.Put(d)

	if _, ok := c.Get(idA); ok {
		t.Fatal("least recently used image was not evicted")
	}
	// An evicted image gets a fresh id; ids are never reused.
	newA, ok := c.Put(a)
	if !ok || newA == idA {
		t.Errorf("Put after eviction = %d, %v; old id %d", newA, ok, idA)
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
}

func TestStreamRoundTrip(t *testing.T) {
	img := lazy()
	f := paint.NewFlags()
	b := paint.NewBuffer()
	b.Push(paint.DrawImageOp{Flags: f, Image: img, Left: 1, Top: 2})
	defer b.Release()

	c := New(8)
	data, err := paint.SerializeBuffer(b, paint.SerializeOptions{TransferCache: c})
	if err != nil {
		t.Fatalf("SerializeBuffer: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d images after serialize, want 1", c.Len())
	}

	if _, err := paint.DeserializeBuffer(data, paint.DeserializeOptions{}); err == nil {
		t.Error("stream with transferred image decoded without a cache")
	}

	got, err := paint.DeserializeBuffer(data, paint.DeserializeOptions{TransferCache: c})
	if err != nil {
		t.Fatalf("DeserializeBuffer: %v", err)
	}
	defer got.Release()
	op, ok := got.FirstOp().(paint.DrawImageOp)
	if !ok || !op.Image.SameImage(img) || op.Left != 1 || op.Top != 2 {
		t.Errorf("decoded op = %+v", got.FirstOp())
	}
}

func TestConcurrentPut(t *testing.T) {
	c := New(0)
	images := make([]paint.Image, 16)
	for i := range images {
		images[i] = lazy()
	}

	var wg sync.WaitGroup
	ids := make([][]uint32, 8)
	for g := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, img := range images {
				id, _ := c.Put(img)
				ids[g] = append(ids[g], id)
			}
		}()
	}
	wg.Wait()

	for g := 1; g < len(ids); g++ {
		for i := range images {
			if ids[g][i] != ids[0][i] {
				t.Fatalf("goroutine %d got id %d for image %d, goroutine 0 got %d", g, ids[g][i], i, ids[0][i])
			}
		}
	}
}
