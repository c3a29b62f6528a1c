package duration_test

import (
	"testing"

	"github.com/arslanca/portfolio-web/internal/duration"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"nothing here", 0},
		{"2 hrs 15 mins 30 secs", 8130},
		{"45 mins", 2700},
		{"1 hr", 3600},
		{"30 secs 2 hrs", 7230},
		{"1 min 1 sec", 61},
		{"3hrs 5mins", 11100},
		{"12 hrs 4 mins", 43440},
	}
	for _, tt := range tests {
		if got := duration.Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		seconds        int
		includeSeconds bool
		want           string
	}{
		{0, true, "0 secs"},
		{0, false, "0 mins"},
		{1, true, "1 sec"},
		{59, false, "0 mins"},
		{61, true, "1 min 1 sec"},
		{90, false, "1 min"},
		{120, true, "2 mins"},
		{3600, true, "1 hr"},
		{3661, true, "1 hr 1 min 1 sec"},
		{7322, false, "2 hrs 2 mins"},
		{7202, true, "2 hrs 2 secs"},
		{-5, true, "0 secs"},
		{360000, true, "100 hrs"},
	}
	for _, tt := range tests {
		if got := duration.Format(tt.seconds, tt.includeSeconds); got != tt.want {
			t.Errorf("Format(%d, %v) = %q, want %q", tt.seconds, tt.includeSeconds, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 1_000_000; n++ {
		if got := duration.Parse(duration.Format(n, true)); got != n {
			t.Fatalf("Parse(Format(%d, true)) = %d", n, got)
		}
	}
}
