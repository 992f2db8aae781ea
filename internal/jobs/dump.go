package jobs

import (
	"encoding/json"
	"os"

	"github.com/spigell/internai/internal/types"
)

// DumpMatchesToTmpFile writes matches as indented JSON to a new temp file and
// returns its path.
func DumpMatchesToTmpFile(matches []types.MatchResult) (string, error) {
	if matches == nil {
		matches = []types.MatchResult{}
	}

	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		return "", err
	}
	return file.Name(), nil
}
