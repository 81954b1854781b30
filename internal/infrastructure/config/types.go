package config

// PhysicsConfig is the root config for physics.yaml
type PhysicsConfig struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Behavior BehaviorConfig `yaml:"behavior"`
	Movement MovementConfig `yaml:"movement"`
}

type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
	Scale        int `yaml:"scale"`
	Framerate    int `yaml:"framerate"`
}

// WorldConfig holds world-space settings. One tile is one world unit.
type WorldConfig struct {
	Gravity       float64 `yaml:"gravity"`
	PixelsPerUnit int     `yaml:"pixelsPerUnit"`
}

// BehaviorConfig holds tunables shared by every enemy and trap
type BehaviorConfig struct {
	ProbeRadius      float64 `yaml:"probeRadius"`
	ProbeDistance    float64 `yaml:"probeDistance"`
	ChaseDeadband    float64 `yaml:"chaseDeadband"`
	Windup           float64 `yaml:"windup"`
	ContactTolerance float64 `yaml:"contactTolerance"`
}

// MovementConfig drives the demo player controller
type MovementConfig struct {
	MaxSpeed  float64 `yaml:"maxSpeed"`
	JumpSpeed float64 `yaml:"jumpSpeed"`
}

// Defaults used where physics.yaml leaves a value unset
const (
	DefaultProbeRadius   = 0.3
	DefaultProbeDistance = 1.1
	DefaultChaseDeadband = 0.1
	DefaultWindup        = 0.2
	DefaultFramerate     = 60
	DefaultPixelsPerUnit = 16
)

func (c *PhysicsConfig) applyDefaults() {
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = DefaultFramerate
	}
	if c.World.PixelsPerUnit <= 0 {
		c.World.PixelsPerUnit = DefaultPixelsPerUnit
	}
	if c.Behavior.ProbeRadius <= 0 {
		c.Behavior.ProbeRadius = DefaultProbeRadius
	}
	if c.Behavior.ProbeDistance <= 0 {
		c.Behavior.ProbeDistance = DefaultProbeDistance
	}
	if c.Behavior.ChaseDeadband <= 0 {
		c.Behavior.ChaseDeadband = DefaultChaseDeadband
	}
	if c.Behavior.Windup <= 0 {
		c.Behavior.Windup = DefaultWindup
	}
}
