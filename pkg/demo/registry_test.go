package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 26)

	seen := make(map[string]bool)
	for _, d := range all {
		assert.False(t, seen[d.Name], "duplicate demo %q", d.Name)
		seen[d.Name] = true
		assert.NotEmpty(t, d.Description, d.Name)
		assert.NotNil(t, d.Run, d.Name)
		assert.Contains(t, Groups(), d.Group)
	}

	assert.Equal(t, "constructor/from-values", all[0].Key())
	assert.Equal(t, "collector/partition", all[len(all)-1].Key())

	// All returns a copy.
	all[0].Name = "changed"
	assert.Equal(t, "from-values", All()[0].Name)
}

func TestLookup(t *testing.T) {
	d, err := Lookup("verify-code")
	require.NoError(t, err)
	assert.Equal(t, GroupOperator, d.Group)

	_, err = Lookup("bogus")
	assert.ErrorIs(t, err, ErrUnknownDemo)
}

func TestByGroup(t *testing.T) {
	counts := map[string]int{GroupConstructor: 4, GroupOperator: 19, GroupCollector: 3}
	for group, want := range counts {
		demos, err := ByGroup(group)
		require.NoError(t, err)
		assert.Len(t, demos, want, group)
	}

	_, err := ByGroup("bogus")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestSelect(t *testing.T) {
	demos, err := Select("", nil)
	require.NoError(t, err)
	assert.Len(t, demos, 26)

	demos, err = Select("", []string{"min", "from-array", "max"})
	require.NoError(t, err)
	assert.Equal(t, []string{"from-array", "max", "min"}, demoNames(demos))

	demos, err = Select(GroupCollector, []string{"group"})
	require.NoError(t, err)
	assert.Equal(t, []string{"group"}, demoNames(demos))

	_, err = Select(GroupCollector, []string{"count"})
	assert.ErrorIs(t, err, ErrUnknownDemo)

	_, err = Select("", []string{"nope"})
	assert.ErrorIs(t, err, ErrUnknownDemo)

	_, err = Select("nope", nil)
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func demoNames(demos []Demo) []string {
	out := make([]string, len(demos))
	for i, d := range demos {
		out[i] = d.Name
	}
	return out
}
