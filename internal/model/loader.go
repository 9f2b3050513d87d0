package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the on-disk JSON form of a trained regressor.
type Artifact struct {
	ModelType    string   `json:"model_type"`
	NFeatures    int      `json:"n_features,omitempty"`
	FeatureNames []string `json:"feature_names"`
	Trees        []Tree   `json:"trees"`
}

// Load reads and validates a model artifact.
func Load(path string) (*Forest, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}

	forest, err := NewForest(artifact.ModelType, artifact.FeatureNames, artifact.NFeatures, artifact.Trees)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return forest, nil
}

// Save writes an artifact as JSON.
func Save(path string, artifact Artifact) error {
	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}
