package booking

type PriceCalculator interface {
	HourlyRate() Money
	ServiceCharge(service ServiceType, durationHours int) (Money, error)
}

const DefaultHourlyRatePaisa int64 = 200 * 100

type DefaultPriceCalculator struct {
	rate Money
}

func NewDefaultPriceCalculator(rate Money) *DefaultPriceCalculator {
	return &DefaultPriceCalculator{rate: rate}
}

func (pc *DefaultPriceCalculator) HourlyRate() Money {
	return pc.rate
}

// ServiceCharge is R for the first hour plus R for every started hour after it.
// Durations are whole hours, so ceil(duration-1) is just duration-1.
func (pc *DefaultPriceCalculator) ServiceCharge(_ ServiceType, durationHours int) (Money, error) {
	if durationHours <= 1 {
		return pc.rate, nil
	}
	extra, err := pc.rate.Mul(int64(durationHours - 1))
	if err != nil {
		return Money{}, err
	}
	return pc.rate.Add(extra)
}
