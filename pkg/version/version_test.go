package version

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"1.2", Version{1, 2, 0}, false},
		{"1.2.3", Version{1, 2, 3}, false},
		{"0.1", Version{0, 1, 0}, false},
		{"invalid", Version{}, true},
		{"1.2.3.4", Version{}, true},
		{"a.b", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		v1, v2 Version
		want   int
	}{
		{Version{1, 0, 0}, Version{1, 0, 0}, 0},
		{Version{1, 0, 0}, Version{1, 0, 1}, -1},
		{Version{1, 0, 1}, Version{1, 0, 0}, 1},
		{Version{1, 1, 0}, Version{1, 2, 0}, -1},
		{Version{1, 3, 0}, Version{1, 2, 0}, 1},
		{Version{1, 0, 0}, Version{2, 0, 0}, -1},
		{Version{2, 0, 0}, Version{1, 0, 0}, 1},
	}

	for _, tt := range tests {
		got := tt.v1.Compare(tt.v2)
		if got != tt.want {
			t.Errorf("(%v).Compare(%v) = %d, want %d", tt.v1, tt.v2, got, tt.want)
		}
	}
}

func TestVersionComparisons(t *testing.T) {
	v1 := Version{1, 0, 0}
	v2 := Version{1, 2, 0}
	v3 := Version{1, 0, 0}

	if !v1.LessThan(v2) {
		t.Errorf("%v should be less than %v", v1, v2)
	}
	if !v2.GreaterThan(v1) {
		t.Errorf("%v should be greater than %v", v2, v1)
	}
	if !v1.Equal(v3) {
		t.Errorf("%v should equal %v", v1, v3)
	}
	if !v1.LessThanOrEqual(v2) {
		t.Errorf("%v should be <= %v", v1, v2)
	}
	if !v1.LessThanOrEqual(v3) {
		t.Errorf("%v should be <= %v", v1, v3)
	}
	if !v2.GreaterThanOrEqual(v1) {
		t.Errorf("%v should be >= %v", v2, v1)
	}
	if !v1.GreaterThanOrEqual(v3) {
		t.Errorf("%v should be >= %v", v1, v3)
	}
}

func TestVersionString(t *testing.T) {
	v := Version{1, 2, 3}
	if v.String() != "1.2.3" {
		t.Errorf("String() = %q, want %q", v.String(), "1.2.3")
	}
}

func TestVersionIsZero(t *testing.T) {
	zero := Version{}
	nonZero := Version{1, 0, 0}

	if !zero.IsZero() {
		t.Error("zero version should be zero")
	}
	if nonZero.IsZero() {
		t.Error("non-zero version should not be zero")
	}
}

func TestNew(t *testing.T) {
	v := New(1, 2, 3)
	if v.Major != 1 || v.Minor != 2 || v.Patch != 3 {
		t.Errorf("New(1, 2, 3) = %v", v)
	}
}

func TestMustParse(t *testing.T) {
	v := MustParse("1.2")
	if v.String() != "1.2.0" {
		t.Errorf("MustParse failed: got %v", v)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("invalid")
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantRaw string
		wantVer Version
		wantErr bool
	}{
		{
			name:    "minor-only pragma",
			source:  "#pragma cc0 1.0\nint main(void){return 0;}",
			wantRaw: "1.0",
			wantVer: Version{1, 0, 0},
		},
		{
			name:    "patch version",
			source:  "#pragma cc0 1.2.3\n",
			wantRaw: "1.2.3",
			wantVer: Version{1, 2, 3},
		},
		{
			name:    "with surrounding whitespace",
			source:  "  #pragma   cc0   1.4  \n",
			wantRaw: "1.4",
			wantVer: Version{1, 4, 0},
		},
		{
			name:    "pragma after other code",
			source:  "int x;\n#pragma cc0 2.0\n",
			wantRaw: "2.0",
			wantVer: Version{2, 0, 0},
		},
		{
			name:    "no pragma",
			source:  "int main(void){return 0;}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.source)
			if (err != nil) != tt.wantErr {
				t.Errorf("Detect() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got.Raw != tt.wantRaw {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.wantRaw)
			}
			if got.Version != tt.wantVer {
				t.Errorf("Version = %v, want %v", got.Version, tt.wantVer)
			}
		})
	}
}

func TestDetectAll(t *testing.T) {
	source := "#pragma cc0 1.0\n#pragma cc0 1.1\n"
	results, err := DetectAll(source)
	if err != nil {
		t.Fatalf("DetectAll() error = %v", err)
	}
	if len(results) != 2 {
		t.Errorf("DetectAll() returned %d results, want 2", len(results))
	}
}
