package envfile

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplier_InheritedWins(t *testing.T) {
	t.Setenv("CREDCHECK_TEST_INHERITED", "from-env")
	os.Unsetenv("CREDCHECK_TEST_LOADED")
	t.Cleanup(func() { os.Unsetenv("CREDCHECK_TEST_LOADED") })

	a := NewApplier()
	err := a.Apply(map[string]string{
		"CREDCHECK_TEST_INHERITED": "from-file",
		"CREDCHECK_TEST_LOADED":    "loaded",
	}, map[string]string{
		"CREDCHECK_TEST_INHERITED": "/x/.env",
		"CREDCHECK_TEST_LOADED":    "/x/.env",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-env", os.Getenv("CREDCHECK_TEST_INHERITED"))
	assert.Equal(t, "loaded", os.Getenv("CREDCHECK_TEST_LOADED"))
	assert.Equal(t, "", a.Source("CREDCHECK_TEST_INHERITED"))
	assert.Equal(t, "/x/.env", a.Source("CREDCHECK_TEST_LOADED"))
}

func TestApplier_ReapplyDropsRemovedKeys(t *testing.T) {
	os.Unsetenv("CREDCHECK_TEST_A")
	os.Unsetenv("CREDCHECK_TEST_B")
	t.Cleanup(func() {
		os.Unsetenv("CREDCHECK_TEST_A")
		os.Unsetenv("CREDCHECK_TEST_B")
	})

	a := NewApplier()
	require.NoError(t, a.Apply(map[string]string{"CREDCHECK_TEST_A": "1"}, nil))
	require.NoError(t, a.Apply(map[string]string{"CREDCHECK_TEST_B": "2"}, nil))

	_, ok := os.LookupEnv("CREDCHECK_TEST_A")
	assert.False(t, ok, "variable from the previous apply should be gone")
	assert.Equal(t, "2", os.Getenv("CREDCHECK_TEST_B"))

	require.NoError(t, a.Reset())
	_, ok = os.LookupEnv("CREDCHECK_TEST_B")
	assert.False(t, ok)
}
