package action

import "fmt"

type parallel struct {
	pendingMajor *Action
	pendingMinor *Action
	major        *Action
	minor        *Action

	forceSplit bool
}

type ParallelOption func(*parallel)

// ForceCategorySplit makes an accepted Abort or Clean of the minor slot
// terminate the whole parallel instead of only shrinking its category.
func ForceCategorySplit() ParallelOption {
	return func(p *parallel) {
		p.forceSplit = true
	}
}

// NewParallel runs major and minor side by side. The parallel lives and
// dies with major; minor ending only shrinks the parallel's category.
func NewParallel(major, minor *Action, opts ...ParallelOption) *Action {
	p := &parallel{pendingMajor: major, pendingMinor: minor}
	for _, opt := range opts {
		opt(p)
	}
	a := New(p, Default)
	a.adopt(major)
	a.adopt(minor)
	a.refreshCategory()
	return a
}

func (p *parallel) Name() string { return "Parallel" }

func (p *parallel) Describe(self *Action) string {
	return fmt.Sprintf("Parallel{major: %s, minor: %s}", describeSlot(p.major, p.pendingMajor), describeSlot(p.minor, p.pendingMinor))
}

func describeSlot(running, pending *Action) string {
	switch {
	case running != nil:
		return running.String()
	case pending != nil:
		return pending.String()
	default:
		return "-"
	}
}

func (p *parallel) Execute(self *Action) Result {
	if p.pendingMajor == nil {
		return Fail
	}

	major := p.pendingMajor
	majorResult := major.Start(self.owner, self.registry)
	if majorResult == Wait {
		p.major = major
	}
	p.pendingMajor = nil
	self.NotifyCategoryChanged()

	if minor := p.pendingMinor; minor != nil {
		if minor.Start(self.owner, self.registry) == Wait {
			p.minor = minor
		}
		p.pendingMinor = nil
		self.NotifyCategoryChanged()
	}

	if majorResult != Wait {
		p.dropMinor(minorResult(majorResult), ReasonMajorFinished, AllCategories)
		self.NotifyCategoryChanged()
	}
	return majorResult
}

func (p *parallel) Tick(self *Action, dt float64) Result {
	if p.major == nil {
		return Abort
	}
	if result := p.major.Tick(dt); result != Wait {
		if p.finishMajor(self, result, ReasonUnknown, Default) {
			return result
		}
		return Wait
	}
	if self.state != Running {
		return resultOf(self.state)
	}
	if p.minor != nil {
		if result := p.minor.Tick(dt); result != Wait {
			p.finishMinor(self, result, ReasonUnknown, Default)
		}
	}
	return Wait
}

func (p *parallel) Finish(self *Action, result Result, reason string, stop Category) bool {
	if p.major != nil {
		if !p.major.Finish(result, reason, stop) {
			p.shedMinor(reason, stop)
			return false
		}
		p.major = nil
	}
	p.dropMinor(minorResult(result), reason, stop)
	p.pendingMajor = nil
	p.pendingMinor = nil
	return true
}

func (p *parallel) finishChild(self, child *Action, result Result, reason string, stop Category) bool {
	switch {
	case child == nil:
		return true
	case child == p.major:
		if !p.finishMajor(self, result, reason, stop) {
			return false
		}
		self.NotifyTerminal(result, reason)
		return true
	case child == p.minor:
		return p.finishMinor(self, result, reason, stop)
	default:
		return true
	}
}

// finishMajor finishes the major slot. On acceptance the minor is
// force-aborted; the caller reports the parallel's own termination.
func (p *parallel) finishMajor(self *Action, result Result, reason string, stop Category) bool {
	major := p.major
	if !major.Finish(result, reason, stop) {
		self.NotifyCategoryChanged()
		return false
	}
	p.major = nil
	p.dropMinor(minorResult(result), ReasonMajorFinished, AllCategories)
	return true
}

func (p *parallel) finishMinor(self *Action, result Result, reason string, stop Category) bool {
	minor := p.minor
	if !minor.Finish(result, reason, stop) {
		self.NotifyCategoryChanged()
		return false
	}
	p.minor = nil
	if p.forceSplit && (result == Abort || result == Clean) {
		self.NotifyTerminal(result, reason)
		return true
	}
	self.NotifyCategoryChanged()
	return true
}

// dropMinor releases the minor slot, overriding a refusal.
func (p *parallel) dropMinor(result Result, reason string, stop Category) {
	minor := p.minor
	p.minor = nil
	p.pendingMinor = nil
	if minor != nil {
		minor.forceFinish(result, reason, stop)
	}
}

// shedMinor aborts a minor overlapping stop while the major holds on.
func (p *parallel) shedMinor(reason string, stop Category) {
	if p.minor == nil || !p.minor.Category().Overlaps(stop) {
		return
	}
	if p.minor.Finish(Abort, reason, stop) {
		p.minor = nil
	}
}

func (p *parallel) forceFinishChildren(self *Action, result Result, reason string, stop Category) {
	major := p.major
	p.major = nil
	p.pendingMajor = nil
	if major != nil {
		major.forceFinish(result, reason, stop)
	}
	p.dropMinor(minorResult(result), reason, stop)
}

func minorResult(majorResult Result) Result {
	if majorResult == Clean {
		return Clean
	}
	return Abort
}

func (p *parallel) category(self *Action) Category {
	c := Default
	for _, slot := range []*Action{p.pendingMajor, p.pendingMinor, p.major, p.minor} {
		if slot != nil {
			c |= slot.Category()
		}
	}
	return c
}

func (p *parallel) activeLeaves(self *Action) []*Action {
	var out []*Action
	if p.major != nil {
		out = append(out, p.major.ActiveLeaves()...)
	}
	if p.minor != nil {
		out = append(out, p.minor.ActiveLeaves()...)
	}
	return out
}
