package utils

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"neuron_lib/nn"
)

// WeightsVersion is written into every weights file.
const WeightsVersion = "1.0"

// WeightsFile is the on-disk form of a network snapshot.
type WeightsFile struct {
	Version  string      `json:"version"`
	Topology []int       `json:"topology"`
	Snapshot nn.Snapshot `json:"snapshot"`
}

// SaveSnapshot saves a network snapshot to a JSON file
func SaveSnapshot(filepath string, snap nn.Snapshot) error {
	data, err := json.MarshalIndent(WeightsFile{
		Version:  WeightsVersion,
		Topology: snap.Sizes(),
		Snapshot: snap,
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal snapshot")
	}
	return errors.Wrap(os.WriteFile(filepath, data, 0644), "failed to write weights file")
}

// LoadSnapshot loads a network snapshot from a JSON file
func LoadSnapshot(filepath string) (nn.Snapshot, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nn.Snapshot{}, errors.Wrap(err, "failed to read weights file")
	}
	var file WeightsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nn.Snapshot{}, errors.Wrap(err, "failed to unmarshal weights")
	}
	if file.Version != WeightsVersion {
		return nn.Snapshot{}, errors.Errorf("unsupported weights version %q", file.Version)
	}
	return file.Snapshot, nil
}
