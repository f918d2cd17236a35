package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyStockChange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		change  int
		want    int
	}{
		{name: "increase", current: 10, change: 5, want: 15},
		{name: "decrease within stock", current: 10, change: -3, want: 7},
		{name: "decrease to exactly zero", current: 10, change: -10, want: 0},
		{name: "decrease past zero clamps", current: 10, change: -100, want: 0},
		{name: "zero change", current: 7, change: 0, want: 7},
		{name: "empty stock stays empty", current: 0, change: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyStockChange(tt.current, tt.change))
		})
	}
}
