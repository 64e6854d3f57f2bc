package models

// KeyBinding maps an editor action to a key combination.
type KeyBinding struct {
	ID          string `json:"id" yaml:"id"`
	Key         string `json:"key" yaml:"key"`
	Action      string `json:"action" yaml:"action"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Settings holds the simulation and robot parameters.
// Velocities are in field units per second, except AVelocity which is rad/s.
type Settings struct {
	XVelocity       float64      `json:"xVelocity" yaml:"x_velocity"`
	YVelocity       float64      `json:"yVelocity" yaml:"y_velocity"`
	AVelocity       float64      `json:"aVelocity" yaml:"a_velocity"`
	MaxVelocity     float64      `json:"maxVelocity" yaml:"max_velocity"`
	MaxAcceleration float64      `json:"maxAcceleration" yaml:"max_acceleration"`
	MaxDeceleration float64      `json:"maxDeceleration" yaml:"max_deceleration"`
	FieldMap        string       `json:"fieldMap" yaml:"field_map"`
	KFriction       float64      `json:"kFriction" yaml:"k_friction"`
	RWidth          float64      `json:"rWidth" yaml:"r_width"`
	RHeight         float64      `json:"rHeight" yaml:"r_height"`
	SafetyMargin    float64      `json:"safetyMargin" yaml:"safety_margin"`
	Theme           string       `json:"theme" yaml:"theme"`
	KeyBindings     []KeyBinding `json:"keyBindings,omitempty" yaml:"key_bindings,omitempty"`
}

// DefaultSettings returns the robot profile used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		XVelocity:       75,
		YVelocity:       65,
		AVelocity:       3.14159,
		MaxVelocity:     40,
		MaxAcceleration: 30,
		MaxDeceleration: 30,
		FieldMap:        "decode.webp",
		KFriction:       0.1,
		RWidth:          16,
		RHeight:         16,
		SafetyMargin:    1,
		Theme:           "auto",
	}
}
