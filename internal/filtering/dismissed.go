package filtering

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spigell/internai/internal/types"
)

type DismissedJob struct {
	ID          string    `json:"id"`
	URL         string    `json:"url,omitempty"`
	Company     string    `json:"company,omitempty"`
	DismissedAt time.Time `json:"dismissed_at"`
}

// DismissedJobs is the content of the exclude file.
type DismissedJobs struct {
	Items []*DismissedJob `json:"items"`
}

// DismissedFromFile reads an exclude file. A missing or empty file holds no jobs.
func DismissedFromFile(path string) (*DismissedJobs, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &DismissedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &DismissedJobs{}, nil
	}

	var dismissed DismissedJobs
	if err := json.NewDecoder(file).Decode(&dismissed); err != nil {
		return nil, fmt.Errorf("decode exclude file: %w", err)
	}
	return &dismissed, nil
}

func (d *DismissedJobs) IDs() []string {
	ids := make([]string, 0, len(d.Items))
	for _, item := range d.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Add appends the jobs that are not dismissed yet and reports how many were added.
func (d *DismissedJobs) Add(now time.Time, jobs ...types.JobItem) int {
	known := make(map[string]struct{}, len(d.Items))
	for _, item := range d.Items {
		known[item.ID] = struct{}{}
	}

	added := 0
	for _, job := range jobs {
		if _, ok := known[job.ID]; ok {
			continue
		}
		known[job.ID] = struct{}{}
		d.Items = append(d.Items, &DismissedJob{
			ID:          job.ID,
			URL:         job.URL,
			Company:     job.Company,
			DismissedAt: now.UTC(),
		})
		added++
	}
	return added
}

func (d *DismissedJobs) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Dismiss records jobs in the exclude file so later runs skip them.
func Dismiss(path string, jobs ...types.JobItem) (int, error) {
	dismissed, err := DismissedFromFile(path)
	if err != nil {
		return 0, err
	}

	added := dismissed.Add(time.Now(), jobs...)
	if added == 0 {
		return 0, nil
	}

	if err := dismissed.ToFile(path); err != nil {
		return 0, fmt.Errorf("write exclude file: %w", err)
	}
	return added, nil
}
