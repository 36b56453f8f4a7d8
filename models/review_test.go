package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTrueToSize(t *testing.T) {
	assert.True(t, ValidTrueToSize(""))
	assert.True(t, ValidTrueToSize(FitRunsSmall))
	assert.True(t, ValidTrueToSize(FitTrueToSize))
	assert.True(t, ValidTrueToSize(FitRunsLarge))

	assert.False(t, ValidTrueToSize("tiny"))
	assert.False(t, ValidTrueToSize("TRUE"))
}

func TestValidWidthFeedback(t *testing.T) {
	assert.True(t, ValidWidthFeedback(""))
	assert.True(t, ValidWidthFeedback(WidthNarrow))
	assert.True(t, ValidWidthFeedback(WidthPerfect))
	assert.True(t, ValidWidthFeedback(WidthWide))

	assert.False(t, ValidWidthFeedback("regular"))
}
