package environment

import (
	"testing"

	"showcase-api/analytics"
	"showcase-api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryEnv(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DBDriver = config.DriverMemory
	cfg.ReviewModeration = true
	cfg.AccessSecret = "secret"

	env, stores := NewMemoryEnv(cfg, analytics.NewTracker(nil, "", ""))
	require.NotNil(t, env)
	require.NotNil(t, stores)

	assert.Same(t, stores.Sections, env.ShowcaseModel.Sections)
	assert.Same(t, stores.Catalog, env.ReviewModel.Catalog)
	assert.True(t, env.ReviewModel.Moderation)
	assert.Equal(t, []byte("secret"), env.Authenticator.Secret)
	assert.NotNil(t, env.ShowcaseModel.GetUserRefs)
}
