package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoss_Vulnerability(t *testing.T) {
	b := NewBoss(9, 100, 40, 32, 32, 8)

	assert.False(t, b.Vulnerable(), "entering bosses ignore hits")

	b.Phase = BossHover
	assert.True(t, b.Vulnerable())

	b.InvincibleTimer = 3
	assert.False(t, b.Vulnerable())

	b.InvincibleTimer = 0
	b.Phase = BossDefeated
	assert.False(t, b.Vulnerable())
	assert.False(t, b.Active())
}

func TestBoss_Enraged(t *testing.T) {
	b := NewBoss(9, 0, 0, 32, 32, 7)
	assert.False(t, b.Enraged())
	b.HP = 4
	assert.False(t, b.Enraged())
	b.HP = 3
	assert.True(t, b.Enraged())
}
