package config

// EnemyConfig holds the parameters of one enemy kind. Each behavior reads
// only the fields it needs.
type EnemyConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	Gravity float64 `yaml:"gravity"`
	MaxFall float64 `yaml:"maxFall"`

	ShotPeriod int     `yaml:"shotPeriod"`
	ShotSpeed  float64 `yaml:"shotSpeed"`

	// flier
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`

	// grabber, chaser
	Range          float64 `yaml:"range"`
	LevelTolerance float64 `yaml:"levelTolerance"`
	SlideSpeed     float64 `yaml:"slideSpeed"`
	SlideTicks     int     `yaml:"slideTicks"`
	Cooldown       int     `yaml:"cooldown"`
	DropSpeed      float64 `yaml:"dropSpeed"`
	RetractSpeed   float64 `yaml:"retractSpeed"`
	TetherLength   float64 `yaml:"tetherLength"`

	// crawler
	Segments int `yaml:"segments"`
	Spacing  int `yaml:"spacing"`
}

// BossConfig tunes the boss phase machine.
type BossConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	HP     int     `yaml:"hp"`

	EnterTicks  int     `yaml:"enterTicks"`
	EnterHeight float64 `yaml:"enterHeight"`

	HoverTicks        int `yaml:"hoverTicks"`
	HoverTicksEnraged int `yaml:"hoverTicksEnraged"`
	AttackTicks       int `yaml:"attackTicks"`
	ShootTicks        int `yaml:"shootTicks"`
	RetreatTicks      int `yaml:"retreatTicks"`

	AttackWeight        int `yaml:"attackWeight"`
	ShootWeight         int `yaml:"shootWeight"`
	EnragedAttackWeight int `yaml:"enragedAttackWeight"`

	HoverSpeed   float64 `yaml:"hoverSpeed"`
	DiveSpeed    float64 `yaml:"diveSpeed"`
	BobAmplitude float64 `yaml:"bobAmplitude"`
	ShotInterval int     `yaml:"shotInterval"`
	ShotSpeed    float64 `yaml:"shotSpeed"`

	HitInvincible     int     `yaml:"hitInvincible"`
	Knockback         float64 `yaml:"knockback"`
	AttackerKnockback float64 `yaml:"attackerKnockback"`
	TeardownTicks     int     `yaml:"teardownTicks"`
}

// DamageConfig tunes what happens when a player is hurt.
type DamageConfig struct {
	InvincibleTicks   int     `yaml:"invincibleTicks"`
	RespawnTicks      int     `yaml:"respawnTicks"`
	RespawnInvincible int     `yaml:"respawnInvincible"`
	KnockbackX        float64 `yaml:"knockbackX"`
	KnockbackY        float64 `yaml:"knockbackY"`
	DeathKick         float64 `yaml:"deathKick"`
	ScatterMax        int     `yaml:"scatterMax"`
}

// PickupConfig tunes collectibles and scattered currency.
type PickupConfig struct {
	Size         float64 `yaml:"size"`
	ScatterTTL   int     `yaml:"scatterTTL"`
	CollectDelay int     `yaml:"collectDelay"`
	Gravity      float64 `yaml:"gravity"`
	BounceDecay  float64 `yaml:"bounceDecay"`
	ScatterSpeed float64 `yaml:"scatterSpeed"`
}

type ProjectileConfig struct {
	Size float64 `yaml:"size"`
	TTL  int     `yaml:"ttl"`
}
