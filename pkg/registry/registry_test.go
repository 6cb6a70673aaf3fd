package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/jieqi/pkg/registry"
)

func TestDefaultStrategyIsRegistered(t *testing.T) {
	f, ok := registry.Lookup(registry.DefaultStrategy)
	require.True(t, ok)

	launcher, root, evaluator := f(context.Background(), 1)
	assert.NotNil(t, launcher)
	assert.NotNil(t, root)
	assert.NotNil(t, evaluator)
}

func TestNamesListsEveryRegisteredStrategy(t *testing.T) {
	names := registry.Names()
	assert.Contains(t, names, "random")
	assert.Contains(t, names, "greedy")
	assert.Contains(t, names, "aggressive")
	assert.Contains(t, names, "defensive")
	assert.Contains(t, names, registry.DefaultStrategy)
}
