package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

type Vehicle struct {
	ID           int32         `json:"id"`
	StationID    int32         `json:"station_id"`
	ModelName    string        `json:"model_name"`
	LicensePlate string        `json:"license_plate"`
	// Declared value of the vehicle; the rental deposit is a configured
	// percentage of this figure.
	InitialValueCents int32         `json:"initial_value_cents"`
	PricePerHourCents int32         `json:"price_per_hour_cents"`
	BatteryLevel      int32         `json:"battery_level"`
	Mileage           int32         `json:"mileage"`
	Status            VehicleStatus `json:"status"`
	CreatedOn         time.Time     `json:"created_on"`
	UpdatedOn         time.Time     `json:"updated_on"`
}

type Station struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedOn time.Time `json:"created_on"`
}
