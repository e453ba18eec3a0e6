package engine

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ModelArtifact is the serialized form of a trained outcome model: forest,
// scaler and the vocabularies of both label encoders, persisted as one blob.
type ModelArtifact struct {
	Forest      *Forest
	Scaler      *StandardScaler
	TeamNames   []string
	LeagueNames []string
	TrainedAt   time.Time
}

// saveArtifact writes the artifact to path via a temp file and atomic rename
func saveArtifact(path string, artifact *ModelArtifact) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".model-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(artifact); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode model artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp artifact file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return nil
}

// loadArtifact reads a previously persisted artifact from path
func loadArtifact(path string) (*ModelArtifact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model artifact: %w", err)
	}
	defer f.Close()

	artifact := &ModelArtifact{}
	if err := gob.NewDecoder(f).Decode(artifact); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	if artifact.Forest == nil || artifact.Scaler == nil {
		return nil, fmt.Errorf("model artifact is incomplete")
	}

	return artifact, nil
}
