package component

// AnimationClip is one named clip of a model's animation set
type AnimationClip struct {
	Name    string
	Loop    bool
	Playing bool
}

// AnimatorComponent drives the clips of a model entity
// Generation increments on every Play so observers can detect restarts
type AnimatorComponent struct {
	Clips      []AnimationClip
	Active     string
	Generation uint64
}

// Play makes name the only playing clip
// Returns false when the clip is not part of the set
func (a *AnimatorComponent) Play(name string) bool {
	if _, ok := a.Clip(name); !ok {
		return false
	}
	for i := range a.Clips {
		a.Clips[i].Playing = a.Clips[i].Name == name
	}
	a.Active = name
	a.Generation++
	return true
}

// Clip returns the named clip
func (a *AnimatorComponent) Clip(name string) (AnimationClip, bool) {
	for _, c := range a.Clips {
		if c.Name == name {
			return c, true
		}
	}
	return AnimationClip{}, false
}
