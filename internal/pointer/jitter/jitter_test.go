package jitter

import (
	"math/rand"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))
	if gen == nil {
		t.Fatal("NewGenerator returned nil")
	}
	if gen.Max() != MaxOffset {
		t.Errorf("Max() = %d, want %d", gen.Max(), MaxOffset)
	}
}

func TestOffsetBounds(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 5000; i++ {
		dx, dy := gen.Offset()
		if dx == 0 && dy == 0 {
			t.Fatalf("iteration %d: offset is (0, 0)", i)
		}
		if abs(dx) > MaxOffset || abs(dy) > MaxOffset {
			t.Fatalf("iteration %d: offset (%d, %d) exceeds %d", i, dx, dy, MaxOffset)
		}
	}
}

func TestOffsetCoversRange(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)))
	seen := make(map[int]bool)

	for i := 0; i < 5000; i++ {
		dx, _ := gen.Offset()
		seen[dx] = true
	}
	for v := -MaxOffset; v <= MaxOffset; v++ {
		if !seen[v] {
			t.Errorf("dx value %d never produced", v)
		}
	}
}

func TestOffsetDeterministic(t *testing.T) {
	gen1 := NewGenerator(rand.New(rand.NewSource(12345)))
	gen2 := NewGenerator(rand.New(rand.NewSource(12345)))

	for i := 0; i < 20; i++ {
		dx1, dy1 := gen1.Offset()
		dx2, dy2 := gen2.Offset()
		if dx1 != dx2 || dy1 != dy2 {
			t.Errorf("offset %d differs: (%d, %d) vs (%d, %d)", i, dx1, dy1, dx2, dy2)
		}
	}
}

func TestNewGeneratorWithMax(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		wantMax int
	}{
		{name: "one pixel", max: 1, wantMax: 1},
		{name: "zero raised to one", max: 0, wantMax: 1},
		{name: "negative raised to one", max: -3, wantMax: 1},
		{name: "wider", max: 10, wantMax: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGeneratorWithMax(rand.New(rand.NewSource(1)), tt.max)
			if gen.Max() != tt.wantMax {
				t.Fatalf("Max() = %d, want %d", gen.Max(), tt.wantMax)
			}
			for i := 0; i < 200; i++ {
				dx, dy := gen.Offset()
				if dx == 0 && dy == 0 {
					t.Fatal("offset is (0, 0)")
				}
				if abs(dx) > tt.wantMax || abs(dy) > tt.wantMax {
					t.Fatalf("offset (%d, %d) exceeds %d", dx, dy, tt.wantMax)
				}
			}
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
