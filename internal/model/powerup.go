package model

import "time"

// PowerUpType names a timed modifier
type PowerUpType string

const (
	PowerUpDoublePoints PowerUpType = "double_points"
	PowerUpFreezeTime   PowerUpType = "freeze_time"
	PowerUpExtraTime    PowerUpType = "extra_time"
)

// ActivePowerUp is a power-up currently in effect for one player
type ActivePowerUp struct {
	Type        PowerUpType   `json:"type" bson:"type"`
	PlayerID    string        `json:"playerId" bson:"playerId"`
	ActivatedAt time.Time     `json:"activatedAt" bson:"activatedAt"`
	Duration    time.Duration `json:"duration" bson:"duration"`
}

// Expired reports whether the power-up has run its full duration at now
func (p ActivePowerUp) Expired(now time.Time) bool {
	return now.Sub(p.ActivatedAt) >= p.Duration
}
