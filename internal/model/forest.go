// Package model loads tree-ensemble regressors exported from scikit-learn as
// JSON and evaluates them.
package model

import (
	"fmt"
	"math"
	"slices"
)

// Supported values of Artifact.ModelType.
const (
	TypeRandomForest = "random_forest_regressor"
	TypeDecisionTree = "decision_tree_regressor"
)

// LeafChild marks a missing child, as in scikit-learn's tree_.children_left.
const LeafChild = -1

// Node is one entry of a tree's flattened node array.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
}

// IsLeaf reports whether the node terminates traversal.
func (n Node) IsLeaf() bool {
	return n.Left == LeafChild && n.Right == LeafChild
}

// Tree is a single regression tree.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest averages the output of its trees. It is immutable once loaded and
// safe for concurrent use.
type Forest struct {
	modelType    string
	featureNames []string
	nFeatures    int
	trees        []Tree
}

// NewForest validates the trees and builds a forest.
// featureNames may be empty when only the feature count is known.
func NewForest(modelType string, featureNames []string, nFeatures int, trees []Tree) (*Forest, error) {
	switch modelType {
	case TypeRandomForest:
	case TypeDecisionTree:
		if len(trees) != 1 {
			return nil, fmt.Errorf("%w: %s needs exactly one tree, got %d", ErrInvalidTree, modelType, len(trees))
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelType)
	}

	if nFeatures == 0 {
		nFeatures = len(featureNames)
	}
	if nFeatures <= 0 {
		return nil, fmt.Errorf("%w: feature count is not declared", ErrFeatureMismatch)
	}
	if len(featureNames) > 0 && len(featureNames) != nFeatures {
		return nil, fmt.Errorf("%w: %d feature names for %d features", ErrFeatureMismatch, len(featureNames), nFeatures)
	}
	if len(trees) == 0 {
		return nil, ErrEmptyModel
	}

	for i, tree := range trees {
		if err := validateTree(tree, nFeatures); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return &Forest{
		modelType:    modelType,
		featureNames: slices.Clone(featureNames),
		nFeatures:    nFeatures,
		trees:        trees,
	}, nil
}

// validateTree checks every index a traversal can follow. Children must come
// after their parent, so traversal always terminates.
func validateTree(tree Tree, nFeatures int) error {
	if len(tree.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidTree)
	}
	for idx, node := range tree.Nodes {
		if node.IsLeaf() {
			if math.IsNaN(node.Value) || math.IsInf(node.Value, 0) {
				return fmt.Errorf("%w: node %d has non-finite value", ErrInvalidTree, idx)
			}
			continue
		}
		if node.Feature < 0 || node.Feature >= nFeatures {
			return fmt.Errorf("%w: node %d splits on feature %d of %d", ErrInvalidTree, idx, node.Feature, nFeatures)
		}
		if math.IsNaN(node.Threshold) || math.IsInf(node.Threshold, 0) {
			return fmt.Errorf("%w: node %d has non-finite threshold", ErrInvalidTree, idx)
		}
		for _, child := range []int{node.Left, node.Right} {
			if child <= idx || child >= len(tree.Nodes) {
				return fmt.Errorf("%w: node %d has child %d", ErrInvalidTree, idx, child)
			}
		}
	}
	return nil
}

// Predict returns the mean prediction of all trees.
func (f *Forest) Predict(features []float64) (float64, error) {
	if len(features) != f.nFeatures {
		return 0, fmt.Errorf("%w: got %d features, model expects %d", ErrFeatureMismatch, len(features), f.nFeatures)
	}

	var sum float64
	for _, tree := range f.trees {
		sum += tree.predict(features)
	}
	return sum / float64(len(f.trees)), nil
}

func (t Tree) predict(features []float64) float64 {
	idx := 0
	for {
		node := t.Nodes[idx]
		if node.IsLeaf() {
			return node.Value
		}
		if features[node.Feature] <= node.Threshold {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// CheckFeatures verifies that the model was trained on exactly these
// features in this order. Models that only declare a count are checked by
// length.
func (f *Forest) CheckFeatures(names []string) error {
	if len(names) != f.nFeatures {
		return fmt.Errorf("%w: model expects %d features, caller provides %d", ErrFeatureMismatch, f.nFeatures, len(names))
	}
	if len(f.featureNames) == 0 {
		return nil
	}
	if !slices.Equal(f.featureNames, names) {
		return fmt.Errorf("%w: model expects %v, caller provides %v", ErrFeatureMismatch, f.featureNames, names)
	}
	return nil
}

// ModelType returns the estimator type recorded in the artifact.
func (f *Forest) ModelType() string { return f.modelType }

// NumTrees returns the ensemble size.
func (f *Forest) NumTrees() int { return len(f.trees) }

// FeatureNames returns a copy of the declared feature names.
func (f *Forest) FeatureNames() []string { return slices.Clone(f.featureNames) }
