package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rehabfolio/portfolio-api/internal/config"
)

func TestNew_RequiresDSN(t *testing.T) {
	d, err := New(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, d)
}
