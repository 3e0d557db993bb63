package collab

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestNDJSONSource_ReadsEachLine(t *testing.T) {
	src := NewNDJSONSource(strings.NewReader("{\"a\":1}\n{\"a\":2}\n"))
	defer src.Close()

	ctx := context.Background()
	d1, err := src.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	v, _ := d1.Get("a")
	if v == nil {
		t.Error("first document missing field a")
	}

	if _, err := src.Next(ctx); err != nil {
		t.Fatalf("second Next: %v", err)
	}

	if _, err := src.Next(ctx); err != io.EOF {
		t.Errorf("want io.EOF at end of stream, got %v", err)
	}
}

func TestNDJSONSource_SkipsBlankLines(t *testing.T) {
	src := NewNDJSONSource(strings.NewReader("\n{\"a\":1}\n\n"))
	doc, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !doc.Exists("a") {
		t.Error("expected field a to exist")
	}
}
