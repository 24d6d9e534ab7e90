package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidScore(t *testing.T) {
	for score := MinScore; score <= MaxScore; score++ {
		assert.True(t, ValidScore(score), "score %d", score)
	}

	assert.False(t, ValidScore(0))
	assert.False(t, ValidScore(6))
	assert.False(t, ValidScore(-1))
}
