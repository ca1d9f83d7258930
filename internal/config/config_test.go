package config

import "testing"

func TestSetCommandCapacityClamps(t *testing.T) {
	defer SetCommandCapacity(GetCommandCapacity())

	tests := []struct {
		in, want int
	}{
		{in: 1, want: 64},
		{in: 500, want: 500},
		{in: 1 << 30, want: 1 << 20},
	}
	for _, tt := range tests {
		SetCommandCapacity(tt.in)
		if got := GetCommandCapacity(); got != tt.want {
			t.Errorf("SetCommandCapacity(%d): got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSetDraw2DVertexBudgetIsEven(t *testing.T) {
	defer SetDraw2DVertexBudget(GetDraw2DVertexBudget())

	SetDraw2DVertexBudget(101)
	if got := GetDraw2DVertexBudget(); got != 100 {
		t.Errorf("budget = %d, want 100", got)
	}
	SetDraw2DVertexBudget(0)
	if got := GetDraw2DVertexBudget(); got != 2 {
		t.Errorf("budget = %d, want 2", got)
	}
}

func TestSetFPSLimitClamps(t *testing.T) {
	defer SetFPSLimit(GetFPSLimit())

	SetFPSLimit(-5)
	if got := GetFPSLimit(); got != 0 {
		t.Errorf("limit = %d, want 0", got)
	}
	SetFPSLimit(5000)
	if got := GetFPSLimit(); got != 1000 {
		t.Errorf("limit = %d, want 1000", got)
	}
}
