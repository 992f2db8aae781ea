// Package jobs loads and validates job lists from JSON files.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spigell/internai/internal/apperr"
	"github.com/spigell/internai/internal/types"
)

var validate = validator.New()

// Decode reads a JSON array of jobs, validates every entry and rejects
// duplicate ids.
func Decode(r io.Reader) ([]types.JobItem, error) {
	var items []types.JobItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	seen := make(map[string]int, len(items))
	for idx := range items {
		item := &items[idx]
		item.ID = strings.TrimSpace(item.ID)

		if err := Validate(*item); err != nil {
			return nil, fmt.Errorf("job %d: %w", idx, err)
		}

		if first, ok := seen[item.ID]; ok {
			return nil, apperr.NewValidation("id", fmt.Sprintf("job %d repeats id %q of job %d", idx, item.ID, first))
		}
		seen[item.ID] = idx
	}

	if items == nil {
		items = []types.JobItem{}
	}
	return items, nil
}

// Validate checks the required fields of a job.
func Validate(job types.JobItem) error {
	err := validate.Struct(job)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		return apperr.NewValidation(strings.ToLower(fe.Field()), fmt.Sprintf("failed %q check", fe.Tag()))
	}
	return apperr.NewValidation("", "invalid job")
}

func LoadFile(path string) ([]types.JobItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open jobs file: %w", err)
	}
	defer f.Close()

	items, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// FileSource serves jobs from a JSON file, reread on every call.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) SampleJobs(ctx context.Context) ([]types.JobItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Path) == "" {
		return []types.JobItem{}, nil
	}
	return LoadFile(s.Path)
}
