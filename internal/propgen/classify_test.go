package propgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKeys_Fixture(t *testing.T) {
	tmpl, err := LoadTemplate(fixture)
	require.NoError(t, err)

	c := ClassifyKeys(tmpl.Defaults)

	assert.Equal(t, []string{
		"schedule.adjustment.parameters.file ",
		"special.purpose.models.trip.file ",
	}, c.RootPathKeys)
	assert.Equal(t, []string{
		"simulated.vehicle.dat.file ",
		"adjusted.schedules.output.file ",
		"inner.loop.abm.data.folder ",
	}, c.LoopPathKeys)
}

func TestClassifyKeys_Tokens(t *testing.T) {
	p := NewParameterSet()
	p.Set("plain", "150000")
	p.Set("root", "BASEPATHinput/x.csv")
	p.Set("pair", "LOOP_PAIR/x.csv")
	p.Set("outer", "OUTER/data")
	p.Set("inner", "run_#.log")
	p.Set("empty", "")

	c := ClassifyKeys(p)

	assert.Equal(t, []string{"root"}, c.RootPathKeys)
	assert.Equal(t, []string{"pair", "outer", "inner"}, c.LoopPathKeys)
}

func TestClassifyKeys_Empty(t *testing.T) {
	c := ClassifyKeys(NewParameterSet())
	assert.NotNil(t, c.RootPathKeys)
	assert.NotNil(t, c.LoopPathKeys)
	assert.Empty(t, c.RootPathKeys)
	assert.Empty(t, c.LoopPathKeys)
}

func TestPolicies_For(t *testing.T) {
	p := DefaultPolicies()

	assert.True(t, p.For("simulated.vehicle.dat.file ").ClearOnZero)
	assert.True(t, p.For("simulated.vehicle.dat.file").ClearOnZero)
	assert.True(t, p.For("adjusted.schedules.output.file ").IsZero())

	var none Policies
	assert.True(t, none.For("anything").IsZero())
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "-", Policy{}.String())
	assert.Equal(t, "clear-on-zero", Policy{ClearOnZero: true}.String())
	assert.Equal(t, "clear-on-zero,previous-inner", Policy{ClearOnZero: true, PreviousInner: true}.String())
	assert.Equal(t, "first-inner-only", Policy{FirstInnerOnly: true}.String())
}

func TestPlan(t *testing.T) {
	plan := Plan(2, 3)

	require.Len(t, plan, 6)
	assert.Equal(t, Iteration{Outer: "0", Inner: "0"}, plan[0])
	assert.Equal(t, Iteration{Outer: "0", Inner: "2"}, plan[2])
	assert.Equal(t, Iteration{Outer: "1", Inner: "0"}, plan[3])
	assert.Equal(t, "outer1/inner2", plan[5].String())

	assert.Empty(t, Plan(0, 3))
	assert.Empty(t, Plan(3, -1))
}
