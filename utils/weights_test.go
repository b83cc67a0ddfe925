package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"neuron_lib/nn"
	"neuron_lib/random"
)

func TestSaveLoadSnapshot(t *testing.T) {
	net, err := nn.NewNetwork([]int{2, 3, 1}, nn.Config{Source: random.NewUniform(5)})
	if err != nil {
		t.Fatalf("NewNetwork failed: %v", err)
	}
	weightsFile := filepath.Join(t.TempDir(), "test_weights.json")

	if err := SaveSnapshot(weightsFile, net.Snapshot()); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	loaded, err := LoadSnapshot(weightsFile)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if !reflect.DeepEqual(loaded, net.Snapshot()) {
		t.Errorf("snapshot changed on round trip:\n got %+v\nwant %+v", loaded, net.Snapshot())
	}

	restored := nn.FromSnapshot(loaded, nn.Config{})
	want, _ := net.Forward([]float64{1, 0})
	got, err := restored.Forward([]float64{1, 0})
	if err != nil {
		t.Fatalf("Forward failed: %v", err)
	}
	if got[0] != want[0] {
		t.Errorf("output = %v, want %v", got[0], want[0])
	}
}

func TestLoadSnapshotNotFound(t *testing.T) {
	_, err := LoadSnapshot("/nonexistent/path/weights.json")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadSnapshotInvalidJSON(t *testing.T) {
	badFile := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(badFile, []byte("not valid json"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := LoadSnapshot(badFile)
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestLoadSnapshotWrongVersion(t *testing.T) {
	file := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(file, []byte(`{"version":"0.1","snapshot":{"layers":[]}}`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := LoadSnapshot(file); err == nil {
		t.Error("Expected error for unsupported version")
	}
}
