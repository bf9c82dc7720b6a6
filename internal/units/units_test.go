package units

import "testing"

func TestBytesToMB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  float64
	}{
		{"zero", 0, 0},
		{"exact mb", 1024 * 1024, 1.0},
		{"half mb", 512 * 1024, 0.5},
		{"rounds to two decimals", 1024*1024 + 634*1024, 1.62},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesToMB(tt.bytes); got != tt.want {
				t.Errorf("BytesToMB(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestBytesToGB(t *testing.T) {
	tests := []struct {
		name  string
		bytes uint64
		want  float64
	}{
		{"zero", 0, 0},
		{"exact gb", 1024 * 1024 * 1024, 1.0},
		{"16 gb", 16 * 1024 * 1024 * 1024, 16.0},
		{"rounds to two decimals", 1024*1024*1024 + 257*1024*1024, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BytesToGB(tt.bytes); got != tt.want {
				t.Errorf("BytesToGB(%d) = %v, want %v", tt.bytes, got, tt.want)
			}
		})
	}
}
