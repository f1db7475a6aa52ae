package postgres

import (
	"context"
	"database/sql"
	"time"

	"evrental-backend/internal/domain"
	"evrental-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, station_id, model_name, license_plate, initial_value_cents, price_per_hour_cents,
	          battery_level, mileage, status, created_on, updated_on FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.StationID, &v.ModelName, &v.LicensePlate, &v.InitialValueCents, &v.PricePerHourCents,
		&v.BatteryLevel, &v.Mileage, &v.Status, &v.CreatedOn, &v.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int32, status domain.VehicleStatus) error {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	return err
}

func (r *vehicleRepository) UpdateCondition(ctx context.Context, id, batteryLevel, mileage int32) error {
	query := `UPDATE vehicles SET battery_level=$1, mileage=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, batteryLevel, mileage, time.Now(), id)
	return err
}

type stationRepository struct {
	db *sql.DB
}

func NewStationRepository(db *sql.DB) repository.StationRepository {
	return &stationRepository{db: db}
}

func (r *stationRepository) GetByID(ctx context.Context, id int32) (*domain.Station, error) {
	s := &domain.Station{}
	query := `SELECT id, name, address, created_on FROM stations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Address, &s.CreatedOn)
	if err != nil {
		return nil, err
	}
	return s, nil
}
