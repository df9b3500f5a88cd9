package action

import "fmt"

type finishCall struct {
	result Result
	reason string
	stop   Category
}

// stub is a scripted leaf behavior that records every hook call.
type stub struct {
	BaseBehavior
	name      string
	execute   Result
	ticks     []Result
	onTick    func(a *Action) Result
	refuse    bool // refuse Abort, shedding the stop mask
	refuseAll bool // refuse every finish
	log       *[]string

	executed  int
	tickCount int
	finishes  []finishCall
}

func (p *stub) Name() string { return p.name }

func (p *stub) Execute(a *Action) Result {
	p.executed++
	p.record("execute")
	return p.execute
}

func (p *stub) Tick(a *Action, dt float64) Result {
	p.tickCount++
	if p.onTick != nil {
		return p.onTick(a)
	}
	if len(p.ticks) == 0 {
		return Wait
	}
	result := p.ticks[0]
	p.ticks = p.ticks[1:]
	return result
}

func (p *stub) Finish(a *Action, result Result, reason string, stop Category) bool {
	p.finishes = append(p.finishes, finishCall{result: result, reason: reason, stop: stop})
	p.record(fmt.Sprintf("finish:%s:%s", result, stop))
	if p.refuseAll {
		return false
	}
	if p.refuse && result == Abort {
		a.SetCategory(a.Category().Without(stop))
		return false
	}
	return true
}

func (p *stub) record(s string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+":"+s)
	}
}

func newStub(name string, c Category, execute Result) (*Action, *stub) {
	p := &stub{name: name, execute: execute}
	return New(p, c), p
}

type postRecord struct {
	count  int
	result Result
	reason string
}

func track(a *Action) *postRecord {
	rec := &postRecord{}
	a.PostFinish = func(_ *Action, result Result, reason string) {
		rec.count++
		rec.result = result
		rec.reason = reason
	}
	return rec
}
