package pipeline

import (
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/tree"
)

// GenerateLayout computes the layout document of a family. opts must have
// passed ValidateForLayout.
func GenerateLayout(fam *Family, opts Options) (tree.Layout, error) {
	mode, err := layout.ParseMode(opts.Mode)
	if err != nil {
		return tree.Layout{}, err
	}
	l, err := layout.Compute(fam.Forest, mode, opts.Layout)
	if err != nil {
		return tree.Layout{}, err
	}
	out := l.Export()
	out.DatasetHash = fam.Hash
	return out, nil
}
