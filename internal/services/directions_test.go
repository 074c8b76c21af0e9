package services

import "testing"

func TestProceedDirection(t *testing.T) {
	tests := []struct {
		angle float64
		want  string
	}{
		{0, "east"},
		{22.4, "east"},
		{22.5, "northeast"},
		{90, "north"},
		{135, "northwest"},
		{180, "west"},
		{225, "southwest"},
		{247.4, "southwest"},
		{247.5, "east"}, // no bucket includes the boundary itself
		{247.6, "south"},
		{270, "south"},
		{315, "southeast"},
		{337.5, "east"},
		{359.9, "east"},
		{-1, "east"},
	}
	for _, tt := range tests {
		if got := ProceedDirection(tt.angle); got != tt.want {
			t.Errorf("ProceedDirection(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}

func TestTurnDirection(t *testing.T) {
	tests := []struct {
		angle  float64
		want   string
		wantOK bool
	}{
		{0, "", false},
		{0.5, "", false},
		{1, "", false},
		{1.5, "left", true},
		{90, "left", true},
		{179.9, "left", true},
		{180, "", false},
		{180.1, "right", true},
		{270, "right", true},
		{358.9, "right", true},
		{359, "", false},
		{359.5, "", false},
		{360, "", false},
	}
	for _, tt := range tests {
		got, ok := TurnDirection(tt.angle)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("TurnDirection(%v) = %q, %v; want %q, %v", tt.angle, got, ok, tt.want, tt.wantOK)
		}
	}
}
