package booking

import (
	"sort"

	"fixify/models"
	"fixify/services/rules"
)

// appointmentCatalog is the static catalog of bookable services. Prices are in
// the default currency SGD.
var appointmentCatalog = map[string]models.AppointmentType{
	"amc-visit": {
		ID:       "amc-visit",
		Name:     "AMC Maintenance Visit",
		Duration: rules.SlotDurationAMC,
		IsAMC:    true,
	},
	"general-service": {
		ID:       "general-service",
		Name:     "General Servicing",
		Duration: rules.SlotDurationRegular,
		IsAMC:    false,
		Price:    price(60),
	},
	"chemical-wash": {
		ID:       "chemical-wash",
		Name:     "Chemical Wash",
		Duration: rules.SlotDurationRegular,
		IsAMC:    false,
		Price:    price(120),
	},
	"repair": {
		ID:       "repair",
		Name:     "Repair & Troubleshooting",
		Duration: rules.SlotDurationRepair,
		IsAMC:    false,
		Price:    price(90),
	},
	"installation-survey": {
		ID:       "installation-survey",
		Name:     "Installation Site Survey",
		Duration: rules.SlotDurationRegular,
		IsAMC:    false,
		Price:    price(40),
	},
}

func price(v float64) *float64 { return &v }

// AppointmentTypeByID looks a catalog entry up by id.
func AppointmentTypeByID(id string) (models.AppointmentType, bool) {
	appt, ok := appointmentCatalog[id]
	return appt, ok
}

// AvailableServices lists the catalog sorted by name for client display.
func AvailableServices() []models.AppointmentType {
	out := make([]models.AppointmentType, 0, len(appointmentCatalog))
	for _, appt := range appointmentCatalog {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
