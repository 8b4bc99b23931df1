package ports

import "go.trai.ch/kiln/internal/core/domain"

// UnitDiscoverer lists the units of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=discoverer.go -destination=mocks/mock_discoverer.go -package=mocks
type UnitDiscoverer interface {
	// Discover returns the project's units sorted by name.
	Discover(cfg *domain.Config) ([]domain.Unit, error)
}
