package server_test

import (
	"testing"

	"inventory-sync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Addr())
	assert.Equal(t, ":", server.Config{}.Addr())
}
