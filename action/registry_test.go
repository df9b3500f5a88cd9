package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryConflict(t *testing.T) {
	cases := []struct {
		name     string
		refuse   bool
		wantX    State
		wantAll  map[Category]int
		wantPost int
	}{
		{"accepts", false, Aborted, map[Category]int{Move | Rotate: 1}, 1},
		{"vetoes", true, Running, map[Category]int{Default: 1, Move | Rotate: 1}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var log []string
			reg := NewRegistry("hero")
			x, xp := newStub("X", Move, Wait)
			xp.log = &log
			xp.refuse = c.refuse
			y, yp := newStub("Y", Move|Rotate, Wait)
			yp.log = &log
			posts := track(x)

			require.Equal(t, Wait, reg.StartAction(x))
			require.Equal(t, Wait, reg.StartAction(y))

			assert.Equal(t, []string{"X:execute", "X:finish:Abort:Move|Rotate", "Y:execute"}, log)
			assert.Equal(t, c.wantX, x.State())
			assert.Equal(t, Running, y.State())
			assert.Equal(t, c.wantPost, posts.count)
			require.Len(t, xp.finishes, 1)
			assert.Equal(t, ReasonConflict, xp.finishes[0].reason)

			all := reg.AllActions()
			assert.Len(t, all, len(c.wantAll))
			for key, n := range c.wantAll {
				assert.Len(t, all[key], n, "bucket %s", key)
			}
			if c.refuse {
				assert.Equal(t, []*Action{x}, all[Default])
			}
			assert.Equal(t, []*Action{y}, all[Move|Rotate])
		})
	}
}

func TestRegistrySoftCategories(t *testing.T) {
	t.Run("soft_bits_do_not_conflict", func(t *testing.T) {
		reg := NewRegistry(nil)
		walk, _ := newStub("walk", Move|Animation, Wait)
		wave, _ := newStub("wave", Animation, Wait)

		require.Equal(t, Wait, reg.StartAction(walk))
		require.Equal(t, Wait, reg.StartAction(wave))
		assert.Equal(t, Running, walk.State())
		assert.Equal(t, 2, reg.Len())

		reg.StopByCategory(Animation, false)
		assert.Equal(t, 2, reg.Len())

		reg.StopByCategory(Animation, true)
		assert.Equal(t, 0, reg.Len())
		assert.Equal(t, Aborted, walk.State())
		assert.Equal(t, Aborted, wave.State())
	})

	t.Run("no_soft_bits_means_mutual_exclusion", func(t *testing.T) {
		reg := NewRegistry(nil, WithSoftCategories(Default))
		first, _ := newStub("first", Animation, Wait)
		second, _ := newStub("second", Animation, Wait)

		require.Equal(t, Wait, reg.StartAction(first))
		require.Equal(t, Wait, reg.StartAction(second))
		assert.Equal(t, Aborted, first.State())
		assert.Equal(t, []*Action{second}, reg.AllActions()[Animation])
	})

	t.Run("default_actions_never_conflict", func(t *testing.T) {
		reg := NewRegistry(nil)
		a, _ := newStub("a", Default, Wait)
		b, _ := newStub("b", Default, Wait)
		require.Equal(t, Wait, reg.StartAction(a))
		require.Equal(t, Wait, reg.StartAction(b))
		assert.Equal(t, []*Action{a, b}, reg.AllActions()[Default])
	})
}

func TestRegistryNarrowingVetoIsIdempotent(t *testing.T) {
	reg := NewRegistry(nil)
	a, p := newStub("walk", Move|Animation, Wait)
	p.refuse = true
	require.Equal(t, Wait, reg.StartAction(a))

	reg.StopByCategory(Move, true)
	reg.StopByCategory(Move, true)

	assert.Len(t, p.finishes, 1)
	assert.Equal(t, Animation, a.Category())
	assert.False(t, reg.ContainsCategory(Move))
	assert.True(t, reg.ContainsCategory(Animation))
}

func TestRegistryStartRejected(t *testing.T) {
	q := &EventQueue{}
	reg := NewRegistry(nil, WithEvents(q))

	assert.Equal(t, Fail, reg.StartAction(nil))

	running, _ := newStub("running", Move, Wait)
	require.Equal(t, Wait, reg.StartAction(running))
	assert.Equal(t, Fail, reg.StartAction(running))

	child, _ := newStub("child", Move, Wait)
	NewSequence(child)
	assert.Equal(t, Fail, reg.StartAction(child))

	events := q.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, EventStarted, events[0].Kind)
	assert.Equal(t, EventRejected, events[1].Kind)
	assert.Equal(t, EventRejected, events[2].Kind)
	assert.Equal(t, 1, reg.Len())
}

func TestRegistryInstantResultNotRegistered(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newStub("blink", Move, Success)
	assert.Equal(t, Success, reg.StartAction(a))
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Contains(a))
}

func TestRegistryStopAction(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newStub("a", Move, Wait)
	stubborn, sp := newStub("stubborn", Rotate, Wait)
	sp.refuseAll = true
	stray, _ := newStub("stray", Move, Wait)

	require.Equal(t, Wait, reg.StartAction(a))
	require.Equal(t, Wait, reg.StartAction(stubborn))

	assert.True(t, reg.StopAction(a))
	assert.Equal(t, Aborted, a.State())
	assert.False(t, reg.StopAction(stray))
	assert.False(t, reg.StopAction(stubborn))
	assert.True(t, reg.Contains(stubborn))
	assert.Equal(t, Running, stubborn.State())
}

func TestRegistryStopAll(t *testing.T) {
	reg := NewRegistry(nil)
	a, _ := newStub("a", Move, Wait)
	b, bp := newStub("b", Rotate|Animation, Wait)
	bp.refuseAll = true
	posts := track(b)

	require.Equal(t, Wait, reg.StartAction(a))
	require.Equal(t, Wait, reg.StartAction(b))

	reg.StopAll()

	assert.Equal(t, 0, reg.Len())
	assert.Empty(t, reg.AllActions())
	assert.Equal(t, Aborted, a.State())
	assert.Equal(t, Aborted, b.State())
	assert.Equal(t, 1, posts.count)
	require.Len(t, bp.finishes, 1)
	assert.Equal(t, ReasonStopAll, bp.finishes[0].reason)

	c, _ := newStub("c", Move, Wait)
	assert.Equal(t, Wait, reg.StartAction(c))
}

func TestRegistryStopAllFinishesRefusingChildren(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		reg := NewRegistry(nil)
		leaf, lp := newStub("leaf", Move|Rotate, Wait)
		lp.refuse = true
		seq := NewSequence(leaf)
		leafPosts := track(leaf)
		seqPosts := track(seq)
		require.Equal(t, Wait, reg.StartAction(seq))

		reg.StopAll()

		assert.Equal(t, Aborted, seq.State())
		assert.Equal(t, Aborted, leaf.State())
		assert.Equal(t, 1, leafPosts.count)
		assert.Equal(t, ReasonStopAll, leafPosts.reason)
		assert.Equal(t, 1, seqPosts.count)
		assert.Equal(t, 0, seq.Behavior().(*sequence).Len())
		assert.Empty(t, seq.ActiveLeaves())
		assert.Equal(t, 0, reg.Len())
	})

	t.Run("parallel", func(t *testing.T) {
		reg := NewRegistry(nil)
		major, majp := newStub("major", Move, Wait)
		majp.refuse = true
		minor, mp := newStub("minor", Animation, Wait)
		mp.refuseAll = true
		par := NewParallel(major, minor)
		majorPosts := track(major)
		minorPosts := track(minor)
		require.Equal(t, Wait, reg.StartAction(par))

		reg.StopAll()

		assert.Equal(t, Aborted, par.State())
		assert.Equal(t, Aborted, major.State())
		assert.Equal(t, Aborted, minor.State())
		assert.Equal(t, 1, majorPosts.count)
		assert.Equal(t, 1, minorPosts.count)
		assert.Empty(t, par.ActiveLeaves())
		assert.Equal(t, 0, reg.Len())
	})
}

func TestRegistryTeardown(t *testing.T) {
	reg := NewRegistry(nil)
	leaf, lp := newStub("leaf", Move, Wait)
	lp.refuseAll = true
	major, _ := newStub("major", Rotate, Wait)
	minor, _ := newStub("minor", Animation, Wait)
	par := NewParallel(major, minor)
	leafPosts := track(leaf)
	parPosts := track(par)

	require.Equal(t, Wait, reg.StartAction(leaf))
	require.Equal(t, Wait, reg.StartAction(par))

	reg.Teardown()

	assert.Equal(t, 0, reg.Len())
	for _, a := range []*Action{leaf, par, major, minor} {
		assert.Equal(t, Cleaned, a.State(), a.Name())
	}
	assert.Equal(t, 0, leafPosts.count)
	assert.Equal(t, 0, parPosts.count)
	require.Len(t, lp.finishes, 1)
	assert.Equal(t, Clean, lp.finishes[0].result)

	late, lateStub := newStub("late", Move, Wait)
	assert.Equal(t, Fail, reg.StartAction(late))
	assert.Equal(t, 0, lateStub.executed)

	reg.Initialize()
	fresh, _ := newStub("fresh", Move, Wait)
	assert.Equal(t, Wait, reg.StartAction(fresh))
}

func TestRegistryTickSnapshot(t *testing.T) {
	reg := NewRegistry(nil)
	replacement, rp := newStub("replacement", Move, Wait)
	victim, vp := newStub("victim", Rotate, Wait)

	driver, dp := newStub("driver", Move, Wait)
	dp.onTick = func(a *Action) Result {
		a.Registry().StopByCategory(Rotate, true)
		a.Registry().StartAction(replacement)
		return Wait
	}

	require.Equal(t, Wait, reg.StartAction(driver))
	require.Equal(t, Wait, reg.StartAction(victim))

	reg.Tick(0.016)

	assert.Equal(t, 1, dp.tickCount)
	assert.Equal(t, 0, vp.tickCount)
	assert.Equal(t, 0, rp.tickCount)
	assert.Equal(t, Aborted, driver.State())
	assert.Equal(t, Aborted, victim.State())
	assert.Equal(t, []*Action{replacement}, reg.Actions())

	reg.Tick(0.016)
	assert.Equal(t, 1, rp.tickCount)
}

func TestRegistryTickFinishesTerminalResults(t *testing.T) {
	q := &EventQueue{}
	reg := NewRegistry(nil, WithEvents(q))
	a, p := newStub("a", Move, Wait)
	p.ticks = []Result{Wait, Fail}
	posts := track(a)

	require.Equal(t, Wait, reg.StartAction(a))
	reg.Tick(0.016)
	assert.Equal(t, Running, a.State())
	reg.Tick(0.016)

	assert.Equal(t, Failed, a.State())
	assert.Equal(t, Fail, posts.result)
	assert.Equal(t, 0, reg.Len())

	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventFinished, events[1].Kind)
	assert.Equal(t, Fail, events[1].Result)
	assert.Equal(t, a.ID(), events[1].ActionID)
}

func TestRegistryActiveLeaves(t *testing.T) {
	reg := NewRegistry(nil)
	major, _ := newStub("major", Move, Wait)
	minor, _ := newStub("minor", Animation, Wait)
	solo, _ := newStub("solo", Rotate, Wait)

	require.Equal(t, Wait, reg.StartAction(NewParallel(major, minor)))
	require.Equal(t, Wait, reg.StartAction(solo))

	assert.ElementsMatch(t, []*Action{major, minor, solo}, reg.ActiveLeaves())
}
