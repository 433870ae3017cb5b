package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/grantmatch/core"
)

// DescriptorFileName is the default name of the persisted job descriptor.
const DescriptorFileName = "batch_job.json"

// SaveDescriptor persists a job descriptor as JSON, via a temp file and
// rename so a crash never leaves a truncated descriptor.
func SaveDescriptor(path string, job *core.BatchJob) error {
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadDescriptor reads a job descriptor written by SaveDescriptor.
func LoadDescriptor(path string) (*core.BatchJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no batch job descriptor at %s: submit a job first", path)
		}
		return nil, err
	}

	var job core.BatchJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job descriptor %s: %w", path, err)
	}
	if job.JobID == "" {
		return nil, fmt.Errorf("job descriptor %s has no job ID", path)
	}
	return &job, nil
}
