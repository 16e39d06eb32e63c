package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fixify/services/rules"
)

func TestCheckAllocation(t *testing.T) {
	tests := []struct {
		name         string
		isAMC        bool
		amcCount     int
		regularCount int
		wantValid    bool
		wantError    string
	}{
		{
			name:  "empty day admits amc",
			isAMC: true, amcCount: 0, regularCount: 0,
			wantValid: true,
		},
		{
			name:  "empty day admits regular",
			isAMC: false, amcCount: 0, regularCount: 0,
			wantValid: true,
		},
		{
			name:  "day at total cap",
			isAMC: true, amcCount: 3, regularCount: 3,
			wantValid: false, wantError: rules.MsgDayFull,
		},
		{
			name:  "amc quota reached",
			isAMC: true, amcCount: 3, regularCount: 0,
			wantValid: false, wantError: rules.MsgAMCDailyLimit,
		},
		{
			name:  "remaining capacity reserved for regular",
			isAMC: true, amcCount: 2, regularCount: 0,
			wantValid: false, wantError: rules.MsgReservedForRegular,
		},
		{
			name:  "amc admitted once regulars consumed the reserve",
			isAMC: true, amcCount: 1, regularCount: 3,
			wantValid: true,
		},
		{
			name:  "regular cap reached",
			isAMC: false, amcCount: 0, regularCount: 3,
			wantValid: false, wantError: rules.MsgRegularDailyLimit,
		},
		{
			name:  "regular below cap",
			isAMC: false, amcCount: 1, regularCount: 2,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckAllocation(tt.isAMC, tt.amcCount, tt.regularCount)
			assert.Equal(t, tt.wantValid, result.IsValid)
			if tt.wantError != "" {
				assert.Equal(t, []string{tt.wantError}, result.Errors)
			}
		})
	}
}

func TestCheckAllocationWithCustomCap(t *testing.T) {
	// A lowered cap shrinks the remaining pool before the tier checks run.
	result := CheckAllocationWithCap(false, 1, 1, 2)
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{rules.MsgDayFull}, result.Errors)
}
