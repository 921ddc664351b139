package main

import (
	"testing"

	"creative-evaluator-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.SessionSecret = "test-secret"
	cfg.SQLitePath = ":memory:"
	return cfg
}

func TestRun_UnknownStoreDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = "mongo"

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open mongo store")
}

func TestRun_StartupFailureAfterStoreOpenReturnsError(t *testing.T) {
	cfg := testConfig()
	cfg.AIProvider = "bogus"

	err := run(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to initialize AI provider bogus: unknown AI provider "bogus"`)
}
