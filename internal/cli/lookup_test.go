package cli

import "testing"

func TestParseTimeMs(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"90.5", 90500, false},
		{"0", 0, false},
		{" 1.5 ", 1500, false},
		{"00:01:30,500", 90500, false},
		{"00:01:30.500", 90500, false},
		{"0:00:01,5", 1500, false},
		{"01:00:00,000", 3600000, false},
		{"abc", 0, true},
		{"1:2:3", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTimeMs(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTimeMs(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("parseTimeMs(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
