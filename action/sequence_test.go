package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceExecute(t *testing.T) {
	cases := []struct {
		name        string
		results     []Result
		wantResult  Result
		wantStarted []int
		wantLeft    int
	}{
		{"empty", nil, Success, nil, 0},
		{"drains_synchronously", []Result{Success, Success, Success}, Success, []int{1, 1, 1}, 0},
		{"stops_at_wait", []Result{Success, Wait, Success}, Wait, []int{1, 1, 0}, 2},
		{"fail_skips_rest", []Result{Success, Fail, Success}, Fail, []int{1, 1, 0}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			children := make([]*Action, 0, len(c.results))
			stubs := make([]*stub, 0, len(c.results))
			for _, r := range c.results {
				a, p := newStub("child", Default, r)
				children = append(children, a)
				stubs = append(stubs, p)
			}
			seq := NewSequence(children...)

			reg := NewRegistry(nil)
			assert.Equal(t, c.wantResult, reg.StartAction(seq))
			for i, p := range stubs {
				assert.Equal(t, c.wantStarted[i], p.executed, "child %d", i)
			}
			assert.Equal(t, c.wantLeft, seq.Behavior().(*sequence).Len())
			for _, child := range children {
				assert.Same(t, seq, child.Parent())
			}
		})
	}
}

func TestSequenceNilChildFails(t *testing.T) {
	a, p := newStub("child", Move, Wait)
	seq := NewSequence(a, nil)
	assert.Equal(t, Fail, seq.Start(nil, nil))
	assert.Equal(t, 0, p.executed)
}

func TestSequenceCategoryFollowsFront(t *testing.T) {
	first, _ := newStub("first", Move, Wait)
	second, _ := newStub("second", Rotate, Wait)
	assert.Equal(t, Move, NewSequence(first, second).Category())
	assert.Equal(t, Default, NewSequence().Category())
}

func TestSequenceChainsAcrossTicks(t *testing.T) {
	reg := NewRegistry(nil)
	first, fp := newStub("first", Move, Wait)
	fp.ticks = []Result{Success}
	instant, _ := newStub("instant", Default, Success)
	last, _ := newStub("last", Rotate, Wait)
	seq := NewSequence(first, instant, last)
	posts := track(seq)

	require.Equal(t, Wait, reg.StartAction(seq))
	assert.Equal(t, []*Action{seq}, reg.AllActions()[Move])

	reg.Tick(0.016)

	assert.Equal(t, Succeeded, first.State())
	assert.Equal(t, Succeeded, instant.State())
	assert.Equal(t, Running, last.State())
	assert.Equal(t, Running, seq.State())
	assert.Equal(t, Rotate, seq.Category())
	assert.Equal(t, []*Action{seq}, reg.AllActions()[Rotate])
	assert.False(t, reg.ContainsCategory(Move))

	last.NotifyTerminal(Success, "arrived")

	assert.Equal(t, Succeeded, seq.State())
	assert.Equal(t, 1, posts.count)
	assert.Equal(t, "arrived", posts.reason)
	assert.Equal(t, 0, reg.Len())
}

func TestSequenceFailureDiscardsRemaining(t *testing.T) {
	cases := []struct {
		name   string
		result Result
		want   State
	}{
		{"fail", Fail, Failed},
		{"abort", Abort, Aborted},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reg := NewRegistry(nil)
			first, fp := newStub("first", Move, Wait)
			fp.ticks = []Result{c.result}
			second, sp := newStub("second", Move, Wait)
			seq := NewSequence(first, second)

			require.Equal(t, Wait, reg.StartAction(seq))
			reg.Tick(0.016)

			assert.Equal(t, c.want, seq.State())
			assert.Equal(t, Idle, second.State())
			assert.Equal(t, 0, sp.executed)
			assert.Equal(t, 0, seq.Behavior().(*sequence).Len())
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestSequenceChainedStartFailure(t *testing.T) {
	reg := NewRegistry(nil)
	first, fp := newStub("first", Move, Wait)
	fp.ticks = []Result{Success}
	broken, _ := newStub("broken", Move, Fail)
	never, np := newStub("never", Move, Wait)
	seq := NewSequence(first, broken, never)

	require.Equal(t, Wait, reg.StartAction(seq))
	reg.Tick(0.016)

	assert.Equal(t, Failed, seq.State())
	assert.Equal(t, 0, np.executed)
	assert.Equal(t, Idle, never.State())
	assert.Equal(t, 0, reg.Len())
}

func TestSequenceRefusalKeepsFront(t *testing.T) {
	reg := NewRegistry(nil)
	front, fp := newStub("front", Move|Animation, Wait)
	fp.refuse = true
	next, _ := newStub("next", Move, Wait)
	seq := NewSequence(front, next)

	require.Equal(t, Wait, reg.StartAction(seq))
	reg.StopByCategory(Move, true)

	assert.Equal(t, Running, seq.State())
	assert.Equal(t, Running, front.State())
	assert.Equal(t, Animation, seq.Category())
	assert.Equal(t, []*Action{seq}, reg.AllActions()[Animation])
	assert.False(t, reg.ContainsCategory(Move))
	assert.Equal(t, 2, seq.Behavior().(*sequence).Len())

	reg.StopByCategory(Move, true)
	assert.Len(t, fp.finishes, 1)
}

func TestSequenceTickRefusalKeepsFront(t *testing.T) {
	reg := NewRegistry(nil)
	front, fp := newStub("front", Move|Animation, Wait)
	fp.refuse = true
	fp.ticks = []Result{Abort}
	seq := NewSequence(front)

	require.Equal(t, Wait, reg.StartAction(seq))
	reg.Tick(0.016)

	assert.Equal(t, Running, seq.State())
	assert.Equal(t, Running, front.State())
	assert.Equal(t, Move|Animation, seq.Category())
	assert.Equal(t, []*Action{seq}, reg.AllActions()[Move|Animation])
	require.Len(t, fp.finishes, 1)
	assert.Equal(t, Default, fp.finishes[0].stop)
}
