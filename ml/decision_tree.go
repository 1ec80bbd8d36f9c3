package ml

import (
	"errors"
	"fmt"
)

type DecisionTree struct {
	nodes     []TreeNode
	nFeatures int
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

// NewDecisionTree wraps a flattened tree whose root is nodes[0]. nFeatures
// is the width the tree was fitted on; zero skips the width check.
func NewDecisionTree(nodes []TreeNode, nFeatures int) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, errors.New("decision tree: no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			if node.ClassLabel != int(NotPotable) && node.ClassLabel != int(Potable) {
				return nil, fmt.Errorf("decision tree: node %d: %w", i, ErrInvalidLabel)
			}
			continue
		}
		if node.FeatureIdx < 0 {
			return nil, fmt.Errorf("decision tree: node %d has negative feature index", i)
		}
		// children always follow their parent in the flattened layout
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("decision tree: node %d has invalid children (%d, %d)", i, node.LeftChild, node.RightChild)
		}
	}
	return &DecisionTree{
		nodes:     append([]TreeNode(nil), nodes...),
		nFeatures: nFeatures,
	}, nil
}

func (dt *DecisionTree) Predict(features []float64) (Label, error) {
	if dt.nFeatures > 0 {
		if err := checkShape(features, dt.nFeatures); err != nil {
			return NotPotable, err
		}
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return Label(node.ClassLabel), nil
		}
		if node.FeatureIdx >= len(features) {
			return NotPotable, fmt.Errorf("%w: tree splits on feature %d, vector has %d", ErrShapeMismatch, node.FeatureIdx, len(features))
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

// RandomForest takes the majority vote of its trees; ties go to NotPotable.
type RandomForest struct {
	trees []*DecisionTree
}

func NewRandomForest(trees []*DecisionTree) (*RandomForest, error) {
	if len(trees) == 0 {
		return nil, errors.New("random forest: no trees")
	}
	return &RandomForest{trees: trees}, nil
}

func (rf *RandomForest) Predict(features []float64) (Label, error) {
	votes := 0
	for i, tree := range rf.trees {
		label, err := tree.Predict(features)
		if err != nil {
			return NotPotable, fmt.Errorf("tree %d: %w", i, err)
		}
		if label == Potable {
			votes++
		}
	}
	if votes*2 > len(rf.trees) {
		return Potable, nil
	}
	return NotPotable, nil
}
