package models

import (
	"encoding/json"
	"testing"
)

func TestParseFacetListTrimsAndDropsEmpty(t *testing.T) {
	list := ParseFacetList(" shirt, casual ,, linen ")
	if len(list) != 3 {
		t.Fatalf("expected 3 values, got %v", list)
	}
	if list[0] != "shirt" || list[1] != "casual" || list[2] != "linen" {
		t.Fatalf("expected trimmed values, got %v", list)
	}
}

func TestFacetListMarshalsToCommaString(t *testing.T) {
	body, err := json.Marshal(FacetList{"shirt", "casual"})
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}
	if string(body) != `"shirt, casual"` {
		t.Fatalf("expected comma-joined string, got %s", body)
	}
}

func TestFacetListUnmarshalsFromString(t *testing.T) {
	var list FacetList
	if err := json.Unmarshal([]byte(`"shirt, casual"`), &list); err != nil {
		t.Fatalf("json unmarshal failed: %v", err)
	}
	if len(list) != 2 || list[0] != "shirt" || list[1] != "casual" {
		t.Fatalf("expected [shirt casual], got %v", list)
	}
}

func TestFacetListUnmarshalsFromArray(t *testing.T) {
	var list FacetList
	if err := json.Unmarshal([]byte(`["shirt","casual"]`), &list); err != nil {
		t.Fatalf("json unmarshal failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 values, got %v", list)
	}
}

func TestFacetListJSONRoundTrip(t *testing.T) {
	original := FacetList{"shirt", "casual"}

	body, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	var decoded FacetList
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("json unmarshal failed: %v", err)
	}
	if decoded.Join() != original.Join() {
		t.Fatalf("expected round trip to preserve values, got %v", decoded)
	}
}
