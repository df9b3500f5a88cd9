package actions

import (
	"testing"

	"github.com/milk9111/actionkit/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait(t *testing.T) {
	cases := []struct {
		name      string
		delay     float64
		wantStart action.Result
		steps     int
		wantState action.State
	}{
		{"zero_delay_succeeds_on_start", 0, action.Success, 0, action.Succeeded},
		{"waits_for_delay", 1, action.Wait, 1, action.Running},
		{"done_after_delay", 1, action.Wait, 2, action.Succeeded},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			a := Wait(c.delay)
			assert.Equal(t, c.wantStart, f.reg.StartAction(a))
			f.step(c.steps, 0.5)
			assert.Equal(t, c.wantState, a.State())
		})
	}
}

func TestFunc(t *testing.T) {
	f := newFixture(t)
	var got *action.Action
	a := Func(func(a *action.Action) { got = a })

	require.Equal(t, action.Success, f.reg.StartAction(a))
	assert.Same(t, a, got)
	assert.Equal(t, 0, f.reg.Len())
}

func TestParseEase(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		at      float64
		want    float64
		wantErr bool
	}{
		{"default_linear", "", 0.25, 0.25, false},
		{"in", "ease_in", 0.5, 0.25, false},
		{"out", "out", 0.5, 0.75, false},
		{"in_out_first_half", "in_out", 0.25, 0.125, false},
		{"in_out_second_half", "EaseInOut", 0.75, 0.875, false},
		{"unknown", "bounce", 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ease, err := ParseEase(c.in)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, c.want, ease(c.at), 1e-9)
		})
	}
}
