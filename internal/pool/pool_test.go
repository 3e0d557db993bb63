package pool

import "testing"

func TestBufferPool_GetPutReset(t *testing.T) {
	p := NewBufferPool(16)
	buf := p.Get()
	buf.Write([]byte("hello"))
	if buf.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", buf.Len())
	}
	p.Put(buf)

	buf2 := p.Get()
	if buf2.Len() != 0 {
		t.Errorf("reused buffer should have been reset, Len() = %d", buf2.Len())
	}
}

func TestDocumentPool_GetPutReset(t *testing.T) {
	p := NewDocumentPool()
	doc := p.Get()
	if err := doc.Set("/level", "critical"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	p.Put(doc)

	doc2 := p.Get()
	if doc2.Exists("/level") {
		t.Errorf("reused document should have been reset, but /level still exists")
	}
}

func TestNewBufferPool_ZeroSizeUsesDefault(t *testing.T) {
	p := NewBufferPool(0)
	buf := p.Get()
	if cap(buf.Data) != DefaultBufferSize {
		t.Errorf("cap = %d, want %d", cap(buf.Data), DefaultBufferSize)
	}
}
