package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStagePools(t *testing.T) {
	starters := StarterStageIDs()
	counterpicks := CounterpickStageIDs()

	require.Len(t, starters, 5)
	require.Len(t, counterpicks, 8)
	require.Subset(t, counterpicks, starters)
	require.Contains(t, counterpicks, "final-destination")
	require.NotContains(t, starters, "final-destination")
}

func TestStagesForGame(t *testing.T) {
	require.Len(t, StagesForGame(1), 5)
	require.Len(t, StagesForGame(2), 8)
	require.Len(t, StagesForGame(5), 8)
}

func TestStageByID(t *testing.T) {
	st, ok := StageByID("battlefield")
	require.True(t, ok)
	require.Equal(t, "Battlefield", st.Name)
	require.NotEmpty(t, st.Image)

	_, ok = StageByID("fountain-of-dreams")
	require.False(t, ok)
}

func TestCharacterLookup(t *testing.T) {
	c, ok := CharacterByID("joker")
	require.True(t, ok)
	require.Equal(t, "Joker", c.Name)

	require.True(t, IsCharacter("fox"))
	require.False(t, IsCharacter("goku"))
}

func TestNoDuplicateIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, st := range Stages {
		require.False(t, seen[st.ID], "duplicate stage id %q", st.ID)
		seen[st.ID] = true
	}
	seen = map[string]bool{}
	for _, c := range Characters {
		require.False(t, seen[c.ID], "duplicate character id %q", c.ID)
		seen[c.ID] = true
	}
}
