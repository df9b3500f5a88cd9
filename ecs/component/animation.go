package component

type Clip struct {
	Name     string
	Duration float64
	Loop     bool
}

// AnimationEnd is called once when the clip it was registered with stops
// playing. interrupted is false only when a non-looping clip ran to its end.
type AnimationEnd func(clip string, interrupted bool)

type Animation struct {
	Clips    map[string]Clip
	Current  string
	Elapsed  float64
	Playing  bool
	Priority int

	listeners []AnimationEnd
}

// NewAnimation builds an idle animation component from a clip list.
func NewAnimation(clips ...Clip) Animation {
	a := Animation{Clips: make(map[string]Clip, len(clips))}
	for _, c := range clips {
		a.Clips[c.Name] = c
	}
	return a
}

// Play starts clip, interrupting whatever was playing. It reports false for
// unknown clips.
func (a *Animation) Play(clip string, priority int, onEnd AnimationEnd) bool {
	if _, ok := a.Clips[clip]; !ok {
		return false
	}
	a.end(true)
	a.Current = clip
	a.Elapsed = 0
	a.Playing = true
	a.Priority = priority
	if onEnd != nil {
		a.listeners = append(a.listeners, onEnd)
	}
	return true
}

// Stop interrupts the current clip.
func (a *Animation) Stop() {
	a.end(true)
}

// Advance moves the current clip forward by dt and reports whether it ran
// to its end.
func (a *Animation) Advance(dt float64) bool {
	if !a.Playing {
		return false
	}
	clip, ok := a.Clips[a.Current]
	if !ok {
		a.end(true)
		return false
	}
	a.Elapsed += dt
	if a.Elapsed < clip.Duration {
		return false
	}
	if clip.Loop && clip.Duration > 0 {
		for a.Elapsed >= clip.Duration {
			a.Elapsed -= clip.Duration
		}
		return false
	}
	a.Elapsed = clip.Duration
	a.end(false)
	return true
}

func (a *Animation) end(interrupted bool) {
	if !a.Playing {
		return
	}
	clip := a.Current
	a.Playing = false
	a.Priority = 0
	listeners := a.listeners
	a.listeners = nil
	for _, fn := range listeners {
		fn(clip, interrupted)
	}
}

var AnimationComponent = NewComponent[Animation]()
