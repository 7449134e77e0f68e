package core

import (
	"math"
	"testing"
)

func TestHashJSON_StableAcrossMapOrder(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2, "z": 3}
	b := map[string]int{"z": 3, "y": 2, "x": 1}

	ha, err := HashJSON(a)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	hb, err := HashJSON(b)
	if err != nil {
		t.Fatalf("HashJSON: %v", err)
	}
	if ha != hb {
		t.Errorf("equal maps hashed differently: %s vs %s", ha, hb)
	}
	if len(ha.String()) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(ha.String()))
	}

	hc, _ := HashJSON(map[string]int{"x": 1})
	if hc == ha {
		t.Error("different values hashed alike")
	}
}

func TestHashJSON_RejectsNaN(t *testing.T) {
	h, err := HashJSON(math.NaN())
	if err == nil {
		t.Fatal("expected an error for NaN")
	}
	if !h.IsEmpty() {
		t.Errorf("expected empty hash, got %s", h)
	}
}
