package jobs

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/internai/internal/types"
)

func TestDumpMatchesToTmpFile(t *testing.T) {
	matches := []types.MatchResult{
		{Job: types.JobItem{ID: "li-001", Title: "Backend Intern"}, Score: 87.5, MissingSkills: []string{"AWS"}},
		{Job: types.JobItem{ID: "in-002", Title: "Data Intern"}, Score: 60},
	}

	path, err := DumpMatchesToTmpFile(matches)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []types.MatchResult
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "li-001", got[0].Job.ID)
	assert.Equal(t, []string{"AWS"}, got[0].MissingSkills)
	assert.Contains(t, string(data), "\n  {")
}

func TestDumpMatchesToTmpFileEmpty(t *testing.T) {
	path, err := DumpMatchesToTmpFile(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
