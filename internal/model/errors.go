package model

import "errors"

// Artifact load and inference errors.
var (
	ErrUnsupportedModel = errors.New("unsupported model type")
	ErrEmptyModel       = errors.New("model has no trees")
	ErrInvalidTree      = errors.New("invalid tree structure")
	ErrFeatureMismatch  = errors.New("feature mismatch")
)
