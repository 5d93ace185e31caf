package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestStaffingTemplate_ValidBounds(t *testing.T) {
	tests := []struct {
		name string
		tpl  StaffingTemplate
		want bool
	}{
		{"min equals target equals max", StaffingTemplate{MinStaff: 2, TargetStaff: 2, MaxStaff: intPtr(2)}, true},
		{"min < target < max", StaffingTemplate{MinStaff: 1, TargetStaff: 2, MaxStaff: intPtr(3)}, true},
		{"no max set", StaffingTemplate{MinStaff: 1, TargetStaff: 5}, true},
		{"min above target", StaffingTemplate{MinStaff: 3, TargetStaff: 2}, false},
		{"target above max", StaffingTemplate{MinStaff: 1, TargetStaff: 4, MaxStaff: intPtr(3)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tpl.ValidBounds())
		})
	}
}

func TestStaffingTemplate_EffectiveOn(t *testing.T) {
	from := day("2024-01-01")
	to := day("2024-01-31")
	tpl := StaffingTemplate{EffectiveFrom: &from, EffectiveTo: &to}

	assert.True(t, tpl.EffectiveOn(day("2024-01-15")))
	assert.False(t, tpl.EffectiveOn(day("2023-12-31")))
	assert.False(t, tpl.EffectiveOn(day("2024-02-01")))
}
