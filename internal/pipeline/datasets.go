package pipeline

import "go-dashboard-pipeline/internal/model"

// Launch records dataset columns
const (
	ColLaunchSite      = "Launch Site"
	ColPayloadMass     = "Payload Mass (kg)"
	ColLaunchClass     = "class"
	ColBoosterCategory = "Booster Version Category"
)

// Automobile sales dataset columns
const (
	ColYear         = "Year"
	ColMonth        = "Month"
	ColRecession    = "Recession"
	ColVehicleType  = "Vehicle_Type"
	ColSales        = "Automobile_Sales"
	ColAdvertising  = "Advertising_Expenditure"
	ColUnemployment = "unemployment_rate"
)

// LaunchColumns maps schema roles onto the launch records dataset.
var LaunchColumns = model.Columns{
	Category: ColLaunchSite,
	Numeric:  ColPayloadMass,
	Outcome:  ColLaunchClass,
}

// SalesColumns maps schema roles onto the automobile sales dataset.
var SalesColumns = model.Columns{
	Category: ColVehicleType,
	Numeric:  ColSales,
	Outcome:  ColRecession,
	Time:     ColYear,
}

// LaunchRules returns the checks a launch records table must pass at load time.
func LaunchRules() model.ValidationRules {
	return model.ValidationRules{
		RequiredColumns: []string{ColLaunchSite, ColPayloadMass, ColLaunchClass, ColBoosterCategory},
		NumericColumns:  []string{ColPayloadMass, ColLaunchClass},
		MinValues:       map[string]float64{ColPayloadMass: 0, ColLaunchClass: 0},
		MaxValues:       map[string]float64{ColLaunchClass: 1},
	}
}

// SalesRules returns the checks an automobile sales table must pass at load time.
func SalesRules() model.ValidationRules {
	return model.ValidationRules{
		RequiredColumns: []string{ColYear, ColMonth, ColRecession, ColVehicleType, ColSales, ColAdvertising, ColUnemployment},
		NumericColumns:  []string{ColYear, ColRecession, ColSales, ColAdvertising, ColUnemployment},
		MinValues:       map[string]float64{ColRecession: 0},
		MaxValues:       map[string]float64{ColRecession: 1},
	}
}
