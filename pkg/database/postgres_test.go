package database

import (
	"testing"

	"marketplace/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolConfig(t *testing.T) {
	config, err := newPoolConfig(utils.DatabaseConfig{
		Host:     "db.internal",
		Port:     "6543",
		Name:     "marketplace",
		User:     "shop",
		Password: "p@ss:w/rd",
		SSLMode:  "disable",
		MaxConns: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "db.internal", config.ConnConfig.Host)
	assert.Equal(t, uint16(6543), config.ConnConfig.Port)
	assert.Equal(t, "marketplace", config.ConnConfig.Database)
	assert.Equal(t, "shop", config.ConnConfig.User)
	assert.Equal(t, "p@ss:w/rd", config.ConnConfig.Password)
	assert.Equal(t, int32(3), config.MaxConns)
	assert.Equal(t, int32(3), config.MinConns)
	assert.Equal(t, connectTimeout, config.ConnConfig.ConnectTimeout)
}

func TestNewPoolConfigKeepsDefaultMaxConns(t *testing.T) {
	config, err := newPoolConfig(utils.DatabaseConfig{
		Host: "localhost", Port: "5432", Name: "marketplace", User: "shop", SSLMode: "disable",
	})
	require.NoError(t, err)

	assert.Positive(t, config.MaxConns)
	assert.LessOrEqual(t, config.MinConns, config.MaxConns)
}
