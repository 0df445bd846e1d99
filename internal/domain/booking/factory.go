package booking

import (
	"errors"

	"driveshare/internal/domain/vehicle"
	"driveshare/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrVehicleNotBookable = errors.New("vehicle is not open for booking")
	ErrNegativePrice      = errors.New("price cannot be negative")
)

type PriceCalculator interface {
	PriceCents(v *vehicle.Vehicle, period RentalPeriod) int64
}

// Factory assembles bookings from a validated rental period. Conflict
// detection happens earlier (availability engine) and again at persistence
// (exclusion constraint); the factory only owns pricing and vehicle gating.
type Factory struct {
	clock clock.Clock
	calc  PriceCalculator
}

func NewFactory(c clock.Clock, calc PriceCalculator) *Factory {
	return &Factory{clock: c, calc: calc}
}

func (f *Factory) CreateBooking(v *vehicle.Vehicle, renterID uuid.UUID, period RentalPeriod, note Note) (*Booking, error) {
	if !v.IsBookable() {
		return nil, ErrVehicleNotBookable
	}
	if period.Start().Before(f.clock.Now()) {
		return nil, ErrPeriodInPast
	}

	cents := f.calc.PriceCents(v, period)
	if cents < 0 {
		return nil, ErrNegativePrice
	}
	price, err := NewMoney(cents)
	if err != nil {
		return nil, err
	}

	return NewBooking(v.ID(), renterID, period, price, note), nil
}

// DailyRateCalculator charges the vehicle's daily rate per started day.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (DailyRateCalculator) PriceCents(v *vehicle.Vehicle, period RentalPeriod) int64 {
	return int64(period.Days()) * v.DailyRateCents()
}
