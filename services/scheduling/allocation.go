package scheduling

import (
	"fixify/models"
	"fixify/services/rules"
)

// CheckAllocation decides whether one more booking of the given tier fits the
// day without breaking the reserved-capacity split. It works on aggregate
// counts only, so it can pre-filter a day before exact slot times are known.
func CheckAllocation(isAMC bool, amcCount, regularCount int) models.ValidationResult {
	return CheckAllocationWithCap(isAMC, amcCount, regularCount, rules.MaxTotalPerDay)
}

// CheckAllocationWithCap is CheckAllocation with an explicit total daily cap.
func CheckAllocationWithCap(isAMC bool, amcCount, regularCount, totalCap int) models.ValidationResult {
	remaining := totalCap - (amcCount + regularCount)
	if remaining <= 0 {
		return models.Reject(rules.MsgDayFull)
	}

	if isAMC {
		if amcCount >= rules.MaxAMCPerDay {
			return models.Reject(rules.MsgAMCDailyLimit)
		}
		reserve := rules.MinRegularReserve - regularCount
		if reserve < 0 {
			reserve = 0
		}
		if remaining <= reserve {
			return models.Reject(rules.MsgReservedForRegular)
		}
		return models.Accept()
	}

	if regularCount >= totalCap-rules.MaxAMCPerDay {
		return models.Reject(rules.MsgRegularDailyLimit)
	}
	return models.Accept()
}
