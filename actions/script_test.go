package actions

import (
	"testing"

	"github.com/milk9111/actionkit/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patrolScript = `
execute := func(engine) {
	st := engine.state
	st.ticks = 0
	return "wait"
}

tick := func(engine, dt) {
	st := engine.state
	st.ticks = st.ticks + 1
	engine.move_by(10 * dt, 0)
	if engine.elapsed() >= 1.0 {
		return "success"
	}
	return "wait"
}
`

func TestScriptRunsHooks(t *testing.T) {
	f := newFixture(t)
	a, err := Script("patrol", patrolScript, action.Move)
	require.NoError(t, err)
	assert.Equal(t, action.Move, a.Category())

	require.Equal(t, action.Wait, f.reg.StartAction(a))
	f.step(1, 0.5)
	assert.InDelta(t, 5, f.transform(t).X, 1e-9)
	assert.Equal(t, action.Running, a.State())

	f.step(1, 0.5)
	assert.InDelta(t, 10, f.transform(t).X, 1e-9)
	assert.Equal(t, action.Succeeded, a.State())
}

func TestScriptInstantResults(t *testing.T) {
	cases := []struct {
		name string
		ret  string
		want action.Result
	}{
		{"success", "success", action.Success},
		{"fail", "fail", action.Fail},
		{"abort", "abort", action.Abort},
		{"garbage_fails", "nope", action.Fail},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			src := `
execute := func(engine) { engine.set_position(1, 2); return "` + c.ret + `" }
tick := func(engine, dt) { return "wait" }
`
			a, err := Script(c.name, src, action.Move)
			require.NoError(t, err)
			assert.Equal(t, c.want, f.reg.StartAction(a))

			x, y, ok := f.ref().Position()
			require.True(t, ok)
			assert.Equal(t, 1.0, x)
			assert.Equal(t, 2.0, y)
		})
	}
}

func TestScriptCompileErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_tick", `execute := func(engine) { return "wait" }`},
		{"syntax", `execute := func(engine) { return `},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Script(c.name, c.src, action.Default)
			require.Error(t, err)
		})
	}
}

func TestScriptFinishCanRefuseAbort(t *testing.T) {
	f := newFixture(t)
	src := `
execute := func(engine) { return "wait" }
tick := func(engine, dt) { return "wait" }
finish := func(engine, result) {
	st := engine.state
	st.finished = result
	return result != "abort"
}
`
	a, err := Script("stubborn", src, action.Move)
	require.NoError(t, err)
	require.Equal(t, action.Wait, f.reg.StartAction(a))

	f.reg.StopMove()
	assert.Equal(t, action.Running, a.State())
	assert.True(t, f.reg.Contains(a))

	f.reg.Teardown()
	assert.Equal(t, action.Cleaned, a.State())
}

func TestScriptRuntimeErrorFails(t *testing.T) {
	f := newFixture(t)
	src := `
execute := func(engine) { return "wait" }
tick := func(engine, dt) { return engine.missing(1) }
`
	a, err := Script("broken", src, action.Move)
	require.NoError(t, err)
	require.Equal(t, action.Wait, f.reg.StartAction(a))

	f.step(1, 0.1)
	assert.Equal(t, action.Failed, a.State())
}
