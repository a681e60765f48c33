package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"zero max", "hello", 0, ""},
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"tiny max", "hello", 2, "he"},
		{"ellipsis", "hello world", 8, "hello..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.max); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/pictures/product-shot.png", 20)
	if len(got) != 20 {
		t.Fatalf("truncateMiddle length = %d, want 20 (%q)", len(got), got)
	}
	if got[len(got)-4:] != ".png" {
		t.Fatalf("truncateMiddle lost the file extension: %q", got)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := formatPrice(12.5); got != "$12.50" {
		t.Fatalf("formatPrice(12.5) = %q, want $12.50", got)
	}
	if got := formatPrice(0); got != "$0.00" {
		t.Fatalf("formatPrice(0) = %q, want $0.00", got)
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{52428800, "50.0 MiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.in); got != tc.want {
			t.Fatalf("formatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
