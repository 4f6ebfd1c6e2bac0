package fsm

// RootConfig represents the top-level graph document
type RootConfig struct {
	InitialState string                  `yaml:"initial"`
	States       map[string]*StateConfig `yaml:"states"`
}

// StateConfig represents a single state definition
type StateConfig struct {
	Parent      string             `yaml:"parent,omitempty"`
	OnEnter     []ActionConfig     `yaml:"on_enter,omitempty"`
	OnUpdate    []ActionConfig     `yaml:"on_update,omitempty"`
	OnExit      []ActionConfig     `yaml:"on_exit,omitempty"`
	Transitions []TransitionConfig `yaml:"transitions,omitempty"`
}

// TransitionConfig represents a transition definition
type TransitionConfig struct {
	Trigger string `yaml:"trigger"`         // Event Name or "Tick"
	Target  string `yaml:"target"`          // Target state name
	Guard   string `yaml:"guard,omitempty"` // Guard function name
}

// ActionConfig represents an action definition
// Args are handed to the action function as map[string]string
type ActionConfig struct {
	Action string            `yaml:"action"`
	Args   map[string]string `yaml:"args,omitempty"`
}
