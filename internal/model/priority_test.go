package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriorityRankOrdering(t *testing.T) {
	assert.Greater(t, PriorityEmergency.Rank(), PriorityUrgent.Rank())
	assert.Greater(t, PriorityUrgent.Rank(), PriorityNormal.Rank())
}

func TestPriorityValid(t *testing.T) {
	assert.True(t, PriorityEmergency.Valid())
	assert.True(t, PriorityUrgent.Valid())
	assert.True(t, PriorityNormal.Valid())
	assert.False(t, Priority("WHENEVER").Valid())
	assert.False(t, Priority("").Valid())
}
