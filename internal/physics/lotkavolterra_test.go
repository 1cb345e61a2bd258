package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/predsim/internal/dynamo"
)

func TestDerive(t *testing.T) {
	c := NewCoefficients(0.5, 0.2, 0.1, 0.2)

	d := c.Derive(dynamo.State{Predators: 1, Prey: 3})

	// 0.1*1*3 - 0.2*1 and 0.5*3 - 0.2*1*3
	assert.InDelta(t, 0.1, d.Predators, 1e-15)
	assert.InDelta(t, 0.9, d.Prey, 1e-15)
}

func TestDeriveAtEquilibrium(t *testing.T) {
	c := NewCoefficients(0.5, 0.2, 0.1, 0.2)

	eq, ok := c.Equilibrium()
	require.True(t, ok)
	assert.InDelta(t, 2.5, eq.Predators, 1e-12)
	assert.InDelta(t, 2.0, eq.Prey, 1e-12)

	d := c.Derive(eq)
	assert.InDelta(t, 0, d.Predators, 1e-12)
	assert.InDelta(t, 0, d.Prey, 1e-12)
}

func TestEquilibriumUndefined(t *testing.T) {
	_, ok := NewCoefficients(0.5, 0, 0, 0.2).Equilibrium()
	assert.False(t, ok)
}

func TestInvariant(t *testing.T) {
	c := NewCoefficients(0.5, 0.2, 0.1, 0.2)

	v, ok := c.Invariant(dynamo.State{Predators: 1, Prey: 3})
	require.True(t, ok)
	assert.InDelta(t, 0.1+0.2*3-0.5*math.Log(3), v, 1e-12)

	_, ok = c.Invariant(dynamo.State{Predators: 0, Prey: 3})
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, NewCoefficients(0.5, 0.2, 0.1, 0.2).Validate())
	assert.NoError(t, Coefficients{}.Validate())

	tests := []struct {
		name   string
		coeffs Coefficients
	}{
		{"negative prey growth", Coefficients{PreyGrowth: -0.1}},
		{"negative predation", Coefficients{Predation: -1}},
		{"NaN predator growth", Coefficients{PredatorGrowth: math.NaN()}},
		{"infinite mortality", Coefficients{PredatorMortality: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coeffs.Validate()
			assert.True(t, errors.Is(err, dynamo.ErrParameterBounds), "got %v", err)
		})
	}
}

func TestWithReturnsCopy(t *testing.T) {
	c := NewCoefficients(0.5, 0.2, 0.1, 0.2)

	updated, err := c.With(ParamPredatorMortality, 0.7)
	require.NoError(t, err)
	assert.Equal(t, 0.7, updated.PredatorMortality)
	assert.Equal(t, 0.2, c.PredatorMortality)

	_, err = c.With("gravity", 9.81)
	assert.ErrorIs(t, err, dynamo.ErrUnknownParam)
}

func TestParamNames(t *testing.T) {
	assert.Equal(t, []string{
		ParamPredation,
		ParamPredatorGrowth,
		ParamPredatorMortality,
		ParamPreyGrowth,
	}, ParamNames())

	params := NewCoefficients(1, 2, 3, 4).GetParams()
	assert.Equal(t, 1.0, params[ParamPreyGrowth])
	assert.Equal(t, 4.0, params[ParamPredatorMortality])
}
