// Package placeholder provides the pitch generator used when no language model is configured.
package placeholder

import (
	"context"

	"leadswift_backend/internal/feature/pitch/domain/entity"
	"leadswift_backend/internal/feature/pitch/usecase"
)

// Name is the provider name recorded on generated pitches.
const Name = "placeholder"

// Generator returns a fixed text naming the lead.
type Generator struct{}

var _ usecase.PitchGenerator = Generator{}

func (Generator) Name() string { return Name }

func (Generator) Generate(_ context.Context, req entity.GenerationRequest) (string, error) {
	return "Generated pitch for lead " + req.LeadID, nil
}
