package action

import "strings"

type sequence struct {
	items   []*Action
	invalid bool
}

// NewSequence chains children: each starts once the previous one succeeded.
// A nil child makes the sequence fail on start.
func NewSequence(children ...*Action) *Action {
	s := &sequence{items: make([]*Action, 0, len(children))}
	for _, c := range children {
		if c == nil {
			s.invalid = true
			continue
		}
		s.items = append(s.items, c)
	}
	a := New(s, Default)
	for _, c := range s.items {
		a.adopt(c)
	}
	a.refreshCategory()
	return a
}

func (s *sequence) Name() string { return "Sequence" }

func (s *sequence) Describe(self *Action) string {
	parts := make([]string, 0, len(s.items))
	for _, item := range s.items {
		parts = append(parts, item.String())
	}
	return "Sequence{" + strings.Join(parts, ", ") + "}"
}

// Len returns the number of elements not yet completed.
func (s *sequence) Len() int { return len(s.items) }

func (s *sequence) Execute(self *Action) Result {
	if s.invalid {
		return Fail
	}
	result := s.advance(self)
	self.NotifyCategoryChanged()
	switch result {
	case Wait, Success:
		return result
	default:
		return Fail
	}
}

// advance starts elements from the front until one waits, one fails or the
// list drains. Synchronously succeeded elements are dropped.
func (s *sequence) advance(self *Action) Result {
	for len(s.items) > 0 {
		if self.state.Terminal() {
			return resultOf(self.state)
		}
		front := s.items[0]
		switch result := front.Start(self.owner, self.registry); result {
		case Wait:
			return Wait
		case Success:
			s.popFront()
		default:
			s.items = nil
			return result
		}
	}
	return Success
}

func (s *sequence) popFront() {
	s.items[0] = nil
	s.items = s.items[1:]
}

func (s *sequence) Tick(self *Action, dt float64) Result {
	if len(s.items) == 0 {
		return Abort
	}
	front := s.items[0]
	if result := front.Tick(dt); result != Wait {
		s.finishChild(self, front, result, ReasonUnknown, Default)
	}
	return Wait
}

func (s *sequence) Finish(self *Action, result Result, reason string, stop Category) bool {
	if len(s.items) == 0 {
		return true
	}
	if !s.items[0].Finish(result, reason, stop) {
		return false
	}
	s.items = nil
	return true
}

func (s *sequence) finishChild(self, child *Action, result Result, reason string, stop Category) bool {
	if len(s.items) == 0 || s.items[0] != child {
		return true
	}
	if !child.Finish(result, reason, stop) {
		self.NotifyCategoryChanged()
		return false
	}
	s.popFront()

	if result == Success {
		result = s.advance(self)
	}
	switch result {
	case Wait:
		self.NotifyCategoryChanged()
	case Success:
		self.NotifyTerminal(Success, reason)
	default:
		s.items = nil
		self.NotifyTerminal(result, reason)
	}
	return true
}

func (s *sequence) forceFinishChildren(self *Action, result Result, reason string, stop Category) {
	items := s.items
	s.items = nil
	if len(items) > 0 {
		items[0].forceFinish(result, reason, stop)
	}
}

func (s *sequence) category(self *Action) Category {
	if len(s.items) == 0 {
		return Default
	}
	return s.items[0].Category()
}

func (s *sequence) activeLeaves(self *Action) []*Action {
	if len(s.items) == 0 {
		return nil
	}
	return s.items[0].ActiveLeaves()
}
