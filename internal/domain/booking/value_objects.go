package booking

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"ghar-ko-sathi/internal/pkg/geo"
)

const (
	MaxDescriptionLength = 2000
	MaxReasonLength      = 500

	// MaxAmountPaisa caps every single amount and every sum of amounts (Rs 1 crore).
	MaxAmountPaisa   int64 = 10_000_000 * 100
	MaxDurationHours       = 720
	MaxETAMinutes          = 24 * 60
)

// Money is an amount in paisa (1/100 rupee).
type Money struct {
	paisa int64
}

func MoneyFromPaisa(p int64) (Money, error) {
	if p < 0 || p > MaxAmountPaisa {
		return Money{}, ErrInvalidAmount
	}
	return Money{paisa: p}, nil
}

func MustMoneyFromPaisa(p int64) Money {
	m, err := MoneyFromPaisa(p)
	if err != nil {
		panic(err)
	}
	return m
}

func MoneyFromRupees(r float64) (Money, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return Money{}, ErrInvalidAmount
	}
	p := math.Round(r * 100)
	if p > float64(MaxAmountPaisa) {
		return Money{}, ErrInvalidAmount
	}
	return Money{paisa: int64(p)}, nil
}

func (m Money) Paisa() int64    { return m.paisa }
func (m Money) Rupees() float64 { return float64(m.paisa) / 100 }
func (m Money) IsZero() bool    { return m.paisa == 0 }

// Add fails instead of exceeding MaxAmountPaisa; both operands are already capped so the sum cannot wrap.
func (m Money) Add(o Money) (Money, error) {
	return MoneyFromPaisa(m.paisa + o.paisa)
}

func (m Money) Mul(n int64) (Money, error) {
	if n < 0 {
		return Money{}, ErrInvalidAmount
	}
	if n != 0 && m.paisa > MaxAmountPaisa/n {
		return Money{}, ErrInvalidAmount
	}
	return Money{paisa: m.paisa * n}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("Rs %d.%02d", m.paisa/100, m.paisa%100)
}

type Location struct {
	point geo.Point
}

func NewLocation(lat, lng float64) (Location, error) {
	p := geo.Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return Location{}, ErrInvalidLocation
	}
	return Location{point: p}, nil
}

func (l Location) Lat() float64     { return l.point.Lat }
func (l Location) Lng() float64     { return l.point.Lng }
func (l Location) Point() geo.Point { return l.point }

type Material struct {
	name string
	cost Money
}

func NewMaterial(name string, cost Money) (Material, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return Material{}, ErrInvalidMaterial
	}
	return Material{name: n, cost: cost}, nil
}

func (m Material) Name() string { return m.name }
func (m Material) Cost() Money  { return m.cost }

type ServiceType string

func NewServiceType(s string) (ServiceType, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", ErrInvalidServiceType
	}
	return ServiceType(t), nil
}

func (s ServiceType) String() string { return string(s) }

type Description struct {
	value string
}

func NewDescription(s string) (Description, error) {
	t := strings.TrimSpace(s)
	if utf8.RuneCountInString(t) > MaxDescriptionLength {
		return Description{}, ErrDescriptionTooLong
	}
	return Description{value: t}, nil
}

func (d Description) String() string { return d.value }

// truncateReason keeps free-text reasons bounded without rejecting the action.
func truncateReason(s string) string {
	t := strings.TrimSpace(s)
	if utf8.RuneCountInString(t) <= MaxReasonLength {
		return t
	}
	runes := []rune(t)
	return string(runes[:MaxReasonLength])
}

// Charges is the itemized bill computed when the provider completes the job.
type Charges struct {
	hourlyRate       Money
	durationHours    int
	serviceCharge    Money
	materials        []Material
	materialCost     Money
	additionalCharge Money
	totalCharge      Money
}

// ComputeCharges derives the bill from pricing inputs. Same inputs always give the same bill.
func ComputeCharges(calc PriceCalculator, service ServiceType, durationHours int, materials []Material, additional Money) (Charges, error) {
	if durationHours < 1 || durationHours > MaxDurationHours {
		return Charges{}, ErrInvalidDuration
	}

	for _, m := range materials {
		if m.name == "" {
			return Charges{}, ErrInvalidMaterial
		}
	}
	materialCost, err := sumMaterials(materials)
	if err != nil {
		return Charges{}, err
	}

	serviceCharge, err := calc.ServiceCharge(service, durationHours)
	if err != nil {
		return Charges{}, err
	}
	total, err := sumCharges(serviceCharge, materialCost, additional)
	if err != nil {
		return Charges{}, err
	}

	items := make([]Material, len(materials))
	copy(items, materials)

	return Charges{
		hourlyRate:       calc.HourlyRate(),
		durationHours:    durationHours,
		serviceCharge:    serviceCharge,
		materials:        items,
		materialCost:     materialCost,
		additionalCharge: additional,
		totalCharge:      total,
	}, nil
}

func sumMaterials(materials []Material) (Money, error) {
	sum := Money{}
	for _, m := range materials {
		next, err := sum.Add(m.cost)
		if err != nil {
			return Money{}, err
		}
		sum = next
	}
	return sum, nil
}

func sumCharges(service, materials, additional Money) (Money, error) {
	sub, err := service.Add(materials)
	if err != nil {
		return Money{}, err
	}
	return sub.Add(additional)
}

// ReconstructCharges rebuilds persisted charges and rejects inconsistent rows.
func ReconstructCharges(
	hourlyRate Money,
	durationHours int,
	serviceCharge Money,
	materials []Material,
	materialCost Money,
	additionalCharge Money,
	totalCharge Money,
) (Charges, error) {
	c := Charges{
		hourlyRate:       hourlyRate,
		durationHours:    durationHours,
		serviceCharge:    serviceCharge,
		materials:        materials,
		materialCost:     materialCost,
		additionalCharge: additionalCharge,
		totalCharge:      totalCharge,
	}
	if err := c.Validate(); err != nil {
		return Charges{}, err
	}
	return c, nil
}

func (c Charges) Validate() error {
	if c.durationHours < 1 || c.durationHours > MaxDurationHours {
		return ErrInvalidDuration
	}
	sum, err := sumMaterials(c.materials)
	if err != nil {
		return err
	}
	if sum != c.materialCost {
		return &TotalMismatchError{Expected: c.materialCost, Computed: sum}
	}
	total, err := sumCharges(c.serviceCharge, c.materialCost, c.additionalCharge)
	if err != nil {
		return err
	}
	if total != c.totalCharge {
		return &TotalMismatchError{Expected: c.totalCharge, Computed: total}
	}
	return nil
}

func (c Charges) HourlyRate() Money       { return c.hourlyRate }
func (c Charges) DurationHours() int      { return c.durationHours }
func (c Charges) ServiceCharge() Money    { return c.serviceCharge }
func (c Charges) MaterialCost() Money     { return c.materialCost }
func (c Charges) AdditionalCharge() Money { return c.additionalCharge }
func (c Charges) TotalCharge() Money      { return c.totalCharge }

func (c Charges) Materials() []Material {
	out := make([]Material, len(c.materials))
	copy(out, c.materials)
	return out
}
