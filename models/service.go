package models

// ServiceDefinition is a named offering used to default a booking's price.
type ServiceDefinition struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Duration int    `json:"duration"` // in minutes
}

type Availability struct {
	Days      []string `json:"days"`
	StartTime string   `json:"startTime"`
	EndTime   string   `json:"endTime"`
}

// OnboardingData is the persisted shape of the shop's configured services
// and working hours.
type OnboardingData struct {
	Services     []ServiceDefinition `json:"services"`
	Availability Availability        `json:"availability"`
}

func DefaultOnboardingData() OnboardingData {
	return OnboardingData{
		Services: []ServiceDefinition{
			{Name: "Haircut", Price: 5000, Duration: 30},
			{Name: "Beard Trim", Price: 3000, Duration: 15},
			{Name: "Haircut & Beard Trim", Price: 7000, Duration: 45},
			{Name: "Kids Haircut", Price: 4000, Duration: 25},
			{Name: "Full Service (Haircut, Beard, Shave)", Price: 12000, Duration: 60},
		},
		Availability: Availability{
			Days:      []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
			StartTime: "09:00",
			EndTime:   "18:00",
		},
	}
}
