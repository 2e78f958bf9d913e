//go:build unit

package booking_test

import (
	"math"
	"testing"

	"ghar-ko-sathi/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromRupees(t *testing.T) {
	cases := []struct {
		name  string
		in    float64
		paisa int64
		errIs error
	}{
		{name: "whole rupees", in: 200, paisa: 20000},
		{name: "fractional rupees", in: 10.25, paisa: 1025},
		{name: "zero", in: 0, paisa: 0},
		{name: "negative", in: -1, errIs: booking.ErrInvalidAmount},
		{name: "nan", in: math.NaN(), errIs: booking.ErrInvalidAmount},
		{name: "inf", in: math.Inf(1), errIs: booking.ErrInvalidAmount},
		{name: "at the cap", in: 10_000_000, paisa: booking.MaxAmountPaisa},
		{name: "above the cap", in: 10_000_000.01, errIs: booking.ErrInvalidAmount},
		{name: "beyond int64 paisa", in: 1e17, errIs: booking.ErrInvalidAmount},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := booking.MoneyFromRupees(c.in)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.paisa, m.Paisa())
		})
	}
}

func TestServiceCharge(t *testing.T) {
	cases := []struct {
		hours int
		want  int64
	}{
		{hours: 1, want: 20000},
		{hours: 2, want: 40000},
		{hours: 5, want: 100000},
	}
	for _, c := range cases {
		got, err := calc.ServiceCharge("plumbing", c.hours)
		require.NoError(t, err)
		assert.Equal(t, c.want, got.Paisa(), "hours=%d", c.hours)
	}
}

func TestServiceChargeRejectsOverflow(t *testing.T) {
	pricey := booking.NewDefaultPriceCalculator(booking.MustMoneyFromPaisa(booking.MaxAmountPaisa / 2))

	_, err := pricey.ServiceCharge("plumbing", 2)
	require.NoError(t, err)

	_, err = pricey.ServiceCharge("plumbing", 3)
	require.ErrorIs(t, err, booking.ErrInvalidAmount)
}

func TestMoneyArithmeticIsChecked(t *testing.T) {
	top := booking.MustMoneyFromPaisa(booking.MaxAmountPaisa)

	_, err := top.Add(booking.MustMoneyFromPaisa(1))
	require.ErrorIs(t, err, booking.ErrInvalidAmount)

	_, err = top.Mul(2)
	require.ErrorIs(t, err, booking.ErrInvalidAmount)

	_, err = booking.MustMoneyFromPaisa(1).Mul(-1)
	require.ErrorIs(t, err, booking.ErrInvalidAmount)

	zero, err := top.Mul(0)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	_, err = booking.MoneyFromPaisa(booking.MaxAmountPaisa + 1)
	require.ErrorIs(t, err, booking.ErrInvalidAmount)
}

func TestComputeCharges(t *testing.T) {
	wire := booking.MustMoneyFromPaisa(12550)
	tape := booking.MustMoneyFromPaisa(4000)
	m1, err := booking.NewMaterial("wire", wire)
	require.NoError(t, err)
	m2, err := booking.NewMaterial("tape", tape)
	require.NoError(t, err)

	c, err := booking.ComputeCharges(calc, "electrical", 2, []booking.Material{m1, m2}, booking.MustMoneyFromPaisa(1000))
	require.NoError(t, err)

	assert.Equal(t, int64(40000), c.ServiceCharge().Paisa())
	assert.Equal(t, int64(16550), c.MaterialCost().Paisa())
	assert.Equal(t, int64(57550), c.TotalCharge().Paisa())
	require.NoError(t, c.Validate())

	again, err := booking.ComputeCharges(calc, "electrical", 2, []booking.Material{m1, m2}, booking.MustMoneyFromPaisa(1000))
	require.NoError(t, err)
	assert.Equal(t, c.TotalCharge(), again.TotalCharge())
}

func TestComputeChargesRejectsOversizedBills(t *testing.T) {
	top := booking.MustMoneyFromPaisa(booking.MaxAmountPaisa)
	pipe, err := booking.NewMaterial("pipe", top)
	require.NoError(t, err)
	valve, err := booking.NewMaterial("valve", booking.MustMoneyFromPaisa(1))
	require.NoError(t, err)

	t.Run("materials sum past the cap", func(t *testing.T) {
		_, err := booking.ComputeCharges(calc, "plumbing", 1, []booking.Material{pipe, valve}, booking.Money{})
		require.ErrorIs(t, err, booking.ErrInvalidAmount)
	})

	t.Run("total past the cap", func(t *testing.T) {
		_, err := booking.ComputeCharges(calc, "plumbing", 1, nil, top)
		require.ErrorIs(t, err, booking.ErrInvalidAmount)
	})

	t.Run("duration past the cap", func(t *testing.T) {
		_, err := booking.ComputeCharges(calc, "plumbing", booking.MaxDurationHours+1, nil, booking.Money{})
		require.ErrorIs(t, err, booking.ErrInvalidDuration)
	})
}

func TestReconstructChargesRejectsDrift(t *testing.T) {
	m, err := booking.NewMaterial("bulb", booking.MustMoneyFromPaisa(5000))
	require.NoError(t, err)

	_, err = booking.ReconstructCharges(
		rate, 1, rate,
		[]booking.Material{m}, booking.MustMoneyFromPaisa(5000),
		booking.Money{}, booking.MustMoneyFromPaisa(99999),
	)
	require.ErrorIs(t, err, booking.ErrInconsistentTotal)

	_, err = booking.ReconstructCharges(
		rate, 1, rate,
		[]booking.Material{m}, booking.MustMoneyFromPaisa(1),
		booking.Money{}, booking.MustMoneyFromPaisa(20001),
	)
	require.ErrorIs(t, err, booking.ErrInconsistentTotal)
}

func TestNewMaterial(t *testing.T) {
	_, err := booking.NewMaterial("  ", booking.Money{})
	require.ErrorIs(t, err, booking.ErrInvalidMaterial)
}

func TestNewLocation(t *testing.T) {
	_, err := booking.NewLocation(91, 0)
	require.ErrorIs(t, err, booking.ErrInvalidLocation)
	_, err = booking.NewLocation(0, -181)
	require.ErrorIs(t, err, booking.ErrInvalidLocation)
	l, err := booking.NewLocation(27.7, 85.3)
	require.NoError(t, err)
	assert.Equal(t, 27.7, l.Lat())
}
