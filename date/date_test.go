package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestIn(t *testing.T) {
	hkt := time.FixedZone("UTC+08:00", 8*3600)
	testCases := []struct {
		name string
		at   time.Time
		loc  *time.Location
		want string
	}{
		{"before midnight UTC, already tomorrow in HK", time.Date(2025, 3, 9, 17, 30, 0, 0, time.UTC), hkt, "2025-03-10"},
		{"HK market close", time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC), hkt, "2025-03-10"},
		{"same instant in UTC", time.Date(2025, 3, 9, 17, 30, 0, 0, time.UTC), time.UTC, "2025-03-09"},
		{"nil location is UTC", time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), nil, "2025-12-31"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := In(tc.at, tc.loc).String(); got != tc.want {
				t.Errorf("In(%v, %v) = %q, want %q", tc.at, tc.loc, got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		input     string
		want      string
		expectErr bool
	}{
		{"2025-07-01", "2025-07-01", false},
		{"2025-7-1", "2025-07-01", false},
		{"2025/07/01", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := Parse(tc.input)
			if (err != nil) != tc.expectErr {
				t.Fatalf("Parse(%q) returned error: %v, want error: %v", tc.input, err, tc.expectErr)
			}
			if err == nil && got.String() != tc.want {
				t.Errorf("Parse(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	d := New(2024, 2, 28)
	next := New(2024, 2, 29)
	if !d.Before(next) || !next.After(d) {
		t.Errorf("expected %v before %v", d, next)
	}
	if d.Before(d) || d.After(d) {
		t.Errorf("%v must be neither before nor after itself", d)
	}
	if d.IsZero() || !(Date{}).IsZero() {
		t.Errorf("IsZero() mismatch")
	}
	if got := New(2024, 2, 30); got != New(2024, 3, 1) {
		t.Errorf("New(2024, 2, 30) = %v, want 2024-03-01", got)
	}
}

func TestJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2025-1-5"`), &d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `"2025-01-05"`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
