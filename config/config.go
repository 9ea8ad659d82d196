package config

import "github.com/chewxy/math32"

// TicksPerSecond is the fixed simulation rate. Every duration tunable is
// converted to ticks against it.
const TicksPerSecond = 50

// PhysicalSize is the edge length of a character's collision box.
const PhysicalSize = 28

// Tunings contains all movement, hook and weapon constants of a tune zone.
// It is a plain value: each character copies the active zone into its core
// at the start of a tick and never shares it.
type Tunings struct {
	// Movement
	GroundControlSpeed float32 `yaml:"ground_control_speed"`
	GroundControlAccel float32 `yaml:"ground_control_accel"`
	GroundFriction     float32 `yaml:"ground_friction"`
	GroundJumpImpulse  float32 `yaml:"ground_jump_impulse"`
	AirJumpImpulse     float32 `yaml:"air_jump_impulse"`
	AirControlSpeed    float32 `yaml:"air_control_speed"`
	AirControlAccel    float32 `yaml:"air_control_accel"`
	AirFriction        float32 `yaml:"air_friction"`

	// Hook
	HookLength    float32 `yaml:"hook_length"`
	HookFireSpeed float32 `yaml:"hook_fire_speed"`
	HookDragAccel float32 `yaml:"hook_drag_accel"`
	HookDragSpeed float32 `yaml:"hook_drag_speed"`
	Gravity       float32 `yaml:"gravity"`

	// Velocity ramp
	VelrampStart     float32 `yaml:"velramp_start"`
	VelrampRange     float32 `yaml:"velramp_range"`
	VelrampCurvature float32 `yaml:"velramp_curvature"`

	// Weapons
	GunCurvature      float32 `yaml:"gun_curvature"`
	GunSpeed          float32 `yaml:"gun_speed"`
	GunLifetime       float32 `yaml:"gun_lifetime"`
	ShotgunCurvature  float32 `yaml:"shotgun_curvature"`
	ShotgunSpeed      float32 `yaml:"shotgun_speed"`
	ShotgunSpeeddiff  float32 `yaml:"shotgun_speeddiff"`
	ShotgunLifetime   float32 `yaml:"shotgun_lifetime"`
	GrenadeCurvature  float32 `yaml:"grenade_curvature"`
	GrenadeSpeed      float32 `yaml:"grenade_speed"`
	GrenadeLifetime   float32 `yaml:"grenade_lifetime"`
	LaserReach        float32 `yaml:"laser_reach"`
	LaserBounceDelay  float32 `yaml:"laser_bounce_delay"`
	LaserBounceNum    float32 `yaml:"laser_bounce_num"`
	LaserBounceCost   float32 `yaml:"laser_bounce_cost"`
	LaserDamage       float32 `yaml:"laser_damage"`
	PlayerCollision   float32 `yaml:"player_collision"`
	PlayerHooking     float32 `yaml:"player_hooking"`
	JetpackStrength   float32 `yaml:"jetpack_strength"`
	ShotgunStrength   float32 `yaml:"shotgun_strength"`
	ExplosionStrength float32 `yaml:"explosion_strength"`
	HammerStrength    float32 `yaml:"hammer_strength"`
	HookDuration      float32 `yaml:"hook_duration"`

	// Fire delays in milliseconds
	HammerFireDelay    float32 `yaml:"hammer_fire_delay"`
	GunFireDelay       float32 `yaml:"gun_fire_delay"`
	ShotgunFireDelay   float32 `yaml:"shotgun_fire_delay"`
	GrenadeFireDelay   float32 `yaml:"grenade_fire_delay"`
	LaserFireDelay     float32 `yaml:"laser_fire_delay"`
	NinjaFireDelay     float32 `yaml:"ninja_fire_delay"`
	HammerHitFireDelay float32 `yaml:"hammer_hit_fire_delay"`
}

// DefaultTunings returns the stock tune zone.
func DefaultTunings() Tunings {
	return Tunings{
		GroundControlSpeed: 10.0,
		GroundControlAccel: 100.0 / float32(TicksPerSecond),
		GroundFriction:     0.5,
		GroundJumpImpulse:  13.2,
		AirJumpImpulse:     12.0,
		AirControlSpeed:    250.0 / float32(TicksPerSecond),
		AirControlAccel:    1.5,
		AirFriction:        0.95,

		HookLength:    380.0,
		HookFireSpeed: 80.0,
		HookDragAccel: 3.0,
		HookDragSpeed: 15.0,
		Gravity:       0.5,

		VelrampStart:     550.0,
		VelrampRange:     2000.0,
		VelrampCurvature: 1.4,

		GunCurvature:      1.25,
		GunSpeed:          2200.0,
		GunLifetime:       2.0,
		ShotgunCurvature:  1.25,
		ShotgunSpeed:      2750.0,
		ShotgunSpeeddiff:  0.8,
		ShotgunLifetime:   0.20,
		GrenadeCurvature:  7.0,
		GrenadeSpeed:      1000.0,
		GrenadeLifetime:   2.0,
		LaserReach:        800.0,
		LaserBounceDelay:  150.0,
		LaserBounceNum:    1000.0,
		LaserBounceCost:   0.0,
		LaserDamage:       5.0,
		PlayerCollision:   1.0,
		PlayerHooking:     1.0,
		JetpackStrength:   400.0,
		ShotgunStrength:   10.0,
		ExplosionStrength: 6.0,
		HammerStrength:    1.0,
		HookDuration:      1.25,

		HammerFireDelay:    125.0,
		GunFireDelay:       125.0,
		ShotgunFireDelay:   500.0,
		GrenadeFireDelay:   500.0,
		LaserFireDelay:     800.0,
		NinjaFireDelay:     800.0,
		HammerHitFireDelay: 320.0,
	}
}

// WeaponID identifies a weapon for fire delay lookups.
type WeaponID int

const (
	WeaponHammer WeaponID = iota
	WeaponGun
	WeaponShotgun
	WeaponGrenade
	WeaponLaser
	WeaponNinja
	WeaponHammerHit
)

// DurationTicks converts a duration in milliseconds to whole ticks, rounding up.
func DurationTicks(ms float32) int32 {
	return int32(math32.Ceil(float32(ms*TicksPerSecond) / 1000))
}

// FireDelayTicks returns the fire delay of a weapon in ticks.
func (t *Tunings) FireDelayTicks(w WeaponID) int32 {
	var ms float32
	switch w {
	case WeaponHammer:
		ms = t.HammerFireDelay
	case WeaponGun:
		ms = t.GunFireDelay
	case WeaponShotgun:
		ms = t.ShotgunFireDelay
	case WeaponGrenade:
		ms = t.GrenadeFireDelay
	case WeaponLaser:
		ms = t.LaserFireDelay
	case WeaponNinja:
		ms = t.NinjaFireDelay
	case WeaponHammerHit:
		ms = t.HammerHitFireDelay
	}
	return DurationTicks(ms)
}
