package experiment

import (
	"fmt"
	"sync"

	"github.com/relasi-app/relasi-core/pkg/models/domain"
)

// ErrUnknownSurface is returned for surface ids no one registered.
var ErrUnknownSurface = fmt.Errorf("unknown experiment surface")

// Arm is one weighted variant of a surface.
type Arm struct {
	Variant domain.Variant
	Weight  int
}

// Registry manages the enumerated experiment surfaces and their arms.
type Registry interface {
	// Register adds a surface with its arms. Weights must be positive.
	Register(surface domain.SurfaceID, arms []Arm) error
	// Arms returns the arms of a surface.
	Arms(surface domain.SurfaceID) ([]Arm, error)
	// Surfaces lists registered surface ids.
	Surfaces() []domain.SurfaceID
}

type registry struct {
	mu       sync.RWMutex
	surfaces map[domain.SurfaceID][]Arm
}

// NewRegistry creates an empty surface registry.
func NewRegistry() Registry {
	return &registry{surfaces: make(map[domain.SurfaceID][]Arm)}
}

// DefaultRegistry returns the production surfaces with uniform weights.
func DefaultRegistry() Registry {
	r := NewRegistry()
	_ = r.Register(domain.SurfaceResultsUpsell, []Arm{
		{Variant: domain.VariantColor, Weight: 1},
		{Variant: domain.VariantPsychological, Weight: 1},
		{Variant: domain.VariantHybrid, Weight: 1},
	})
	_ = r.Register(domain.SurfaceCheckoutCTA, []Arm{
		{Variant: domain.VariantSoft, Weight: 1},
		{Variant: domain.VariantDirect, Weight: 1},
		{Variant: domain.VariantUrgency, Weight: 1},
	})
	return r
}

func (r *registry) Register(surface domain.SurfaceID, arms []Arm) error {
	if surface == "" {
		return fmt.Errorf("surface id cannot be empty")
	}
	if len(arms) == 0 {
		return fmt.Errorf("surface %q needs at least one arm", surface)
	}
	for _, a := range arms {
		if a.Weight <= 0 {
			return fmt.Errorf("surface %q: arm %q has non-positive weight", surface, a.Variant)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[surface]; exists {
		return fmt.Errorf("surface %q is already registered", surface)
	}
	r.surfaces[surface] = append([]Arm(nil), arms...)
	return nil
}

func (r *registry) Arms(surface domain.SurfaceID) ([]Arm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	arms, ok := r.surfaces[surface]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSurface, surface)
	}
	return append([]Arm(nil), arms...), nil
}

func (r *registry) Surfaces() []domain.SurfaceID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SurfaceID, 0, len(r.surfaces))
	for s := range r.surfaces {
		out = append(out, s)
	}
	return out
}
