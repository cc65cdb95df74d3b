package sanitize_test

import (
	"testing"

	"kada-admin/internal/pkg/sanitize"
)

func TestText(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"  Laporan Tahunan 2024  ", "Laporan Tahunan 2024"},
		{"<b>Ahmad</b> bin Ali", "Ahmad bin Ali"},
		{"<script>alert('x')</script>Siti", "Siti"},
		{"O'Neil & Co", "O'Neil & Co"},
	}
	for _, tc := range cases {
		if got := sanitize.Text(tc.in); got != tc.want {
			t.Errorf("Text(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
