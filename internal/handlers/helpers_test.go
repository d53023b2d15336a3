package handlers

import "testing"

func TestParsePaginationDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 20 {
		t.Fatalf("defaults = %d/%d, want 1/20", page, limit)
	}
}

func TestParsePaginationRejectsBadInput(t *testing.T) {
	for _, tt := range []struct{ page, limit string }{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "x"},
	} {
		if _, _, err := parsePaginationParams(tt.page, tt.limit); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tt.page, tt.limit)
		}
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("FirstName"); got != "firstName" {
		t.Fatalf("lowerCamel = %q", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("lowerCamel empty = %q", got)
	}
}
