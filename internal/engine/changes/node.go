package changes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/fs"     //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/adapters/logger" //nolint:depguard // Wired in engine layer
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the change detector Graft node.
const NodeID graft.ID = "engine.changes"

func init() {
	graft.Register(graft.Node[*Detector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.FingerprinterNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Detector, error) {
			fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewDetector(fingerprinter, log), nil
		},
	})
}
