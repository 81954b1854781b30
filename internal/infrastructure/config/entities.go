package config

// EntitiesConfig is the root config for entities.yaml
type EntitiesConfig struct {
	Player      PlayerConfig                `yaml:"player"`
	Projectiles map[string]ProjectileConfig `yaml:"projectiles"`
	Enemies     map[string]EnemyConfig      `yaml:"enemies"`
}

// Vec2 is a 2D value in world units
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PlayerConfig struct {
	Size         Vec2    `yaml:"size"`
	MaxHealth    int     `yaml:"maxHealth"`
	Iframes      float64 `yaml:"iframes"`
	AttackDamage int     `yaml:"attackDamage"`
	AttackReach  float64 `yaml:"attackReach"`
}

type ProjectileConfig struct {
	Size     Vec2    `yaml:"size"`
	Speed    float64 `yaml:"speed"`
	Damage   int     `yaml:"damage"`
	Lifetime float64 `yaml:"lifetime"`
}

// Enemy kinds
const (
	KindGunner = "gunner"
	KindPatrol = "patrol"
)

// EnemyConfig is an enemy template; Kind selects which section applies
type EnemyConfig struct {
	Kind           string  `yaml:"kind"`
	Size           Vec2    `yaml:"size"`
	Mass           float64 `yaml:"mass"`
	Health         int     `yaml:"health"`
	DetectDistance float64 `yaml:"detectDistance"`
	DamageToPlayer int     `yaml:"damageToPlayer"`
	HurtRecoil     Vec2    `yaml:"hurtRecoil"`
	HurtRecoilTime float64 `yaml:"hurtRecoilTime"`
	DeathForce     Vec2    `yaml:"deathForce"`
	DestroyDelay   float64 `yaml:"destroyDelay"`

	Gunner GunnerConfig `yaml:"gunner"`
	Patrol PatrolConfig `yaml:"patrol"`
}

type GunnerConfig struct {
	ShootInterval float64 `yaml:"shootInterval"`
	Windup        float64 `yaml:"windup"`
	Projectile    string  `yaml:"projectile"`
}

type PatrolConfig struct {
	WalkSpeed        float64       `yaml:"walkSpeed"`
	EdgeSafeDistance float64       `yaml:"edgeSafeDistance"`
	BehaveInterval   IntervalRange `yaml:"behaveInterval"`
}

// IntervalRange is a [Least, Most) duration range in seconds
type IntervalRange struct {
	Least float64 `yaml:"least"`
	Most  float64 `yaml:"most"`
}
