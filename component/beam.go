package component

import "github.com/lixenwraith/zengarden/core"

// BeamComponent binds a connector entity to the platform it tracks
// The beam's transform is derived every tick and never stored elsewhere
type BeamComponent struct {
	Index    int
	Platform core.Entity
}
