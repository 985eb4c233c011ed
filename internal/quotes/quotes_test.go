package quotes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sleepyhq/sleepy/internal/quotes"
)

func TestPoolsNeverReturnEmpty(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.NotEmpty(t, quotes.Random())
		assert.NotEmpty(t, quotes.Supportive())
		assert.NotEmpty(t, quotes.Urgent())
	}
}
