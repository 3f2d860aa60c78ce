package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents_Reset(t *testing.T) {
	var ev Events
	assert.False(t, ev.Any())

	ev.EnemyDefeated = 2
	ev.LevelComplete = true
	assert.True(t, ev.Any())

	ev.Reset()
	assert.False(t, ev.Any())
	assert.Equal(t, Events{}, ev)
}
