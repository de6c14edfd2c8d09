package timegrid

import (
	"errors"
	"testing"
)

func TestLabelsIsACopy(t *testing.T) {
	a := Labels()
	a[0] = "mutated"
	b := Labels()
	if b[0] != "07:00" {
		t.Fatalf("Labels() leaked internal state: got %q", b[0])
	}
	if len(b) != Size() {
		t.Fatalf("Labels() length %d, Size() %d", len(b), Size())
	}
}

func TestContainsAndIndex(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"07:00", 0},
		{"09:50", 3},
		{"13:00", 6},
		{"21:30", 15},
		{"12:00", -1}, // lunch gap, not a slot
		{"9:50", -1},  // missing zero padding
		{"", -1},
	}

	for _, tt := range tests {
		if got := Index(tt.label); got != tt.want {
			t.Errorf("Index(%q) = %d, want %d", tt.label, got, tt.want)
		}
		if got := Contains(tt.label); got != (tt.want >= 0) {
			t.Errorf("Contains(%q) = %v, want %v", tt.label, got, tt.want >= 0)
		}
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "reversed grid labels",
			in:   []string{"19:00", "13:00", "07:50"},
			want: []string{"07:50", "13:00", "19:00"},
		},
		{
			name: "unknown labels sort last",
			in:   []string{"99:99", "07:00", "21:30"},
			want: []string{"07:00", "21:30", "99:99"},
		},
		{
			name: "already sorted",
			in:   []string{"10:40", "11:30"},
			want: []string{"10:40", "11:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.in)
			for i := range tt.want {
				if tt.in[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", tt.in, tt.want)
				}
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		wantErr error
	}{
		{name: "valid single", in: []string{"09:50"}},
		{name: "valid multiple", in: []string{"07:00", "19:50"}},
		{name: "empty", in: nil, wantErr: ErrEmptySelection},
		{name: "duplicate", in: []string{"07:00", "07:00"}, wantErr: ErrDuplicateLabel},
		{name: "unknown slot", in: []string{"12:00"}, wantErr: ErrUnknownLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate(%v) = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%v) = %v, want nil", tt.in, err)
			}
		})
	}
}
