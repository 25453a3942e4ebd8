package main

import (
	"math"
	"testing"
)

func TestCheckTicks(t *testing.T) {
	tests := []struct {
		name    string
		in      uint64
		want    uint32
		wantErr bool
	}{
		{"zero is rejected", 0, 0, true},
		{"one", 1, 1, false},
		{"default", 600, 600, false},
		{"largest", math.MaxUint32, math.MaxUint32, false},
		{"too large", math.MaxUint32 + 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkTicks(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("checkTicks(%d) error = %v; wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("checkTicks(%d) = %d; want %d", tt.in, got, tt.want)
			}
		})
	}
}
