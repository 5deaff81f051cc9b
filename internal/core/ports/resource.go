package ports

import (
	"context"

	"github.com/shomvob/travels-api/internal/core/domain"
)

// ResourceRepository is the uniform persistence contract behind every generic
// catalog resource. Implementations are parameterized by collection and
// identifier field at construction time.
type ResourceRepository interface {
	List(ctx context.Context, filter map[string]any) ([]domain.Document, error)
	// RandomSample returns up to n pseudo-randomly chosen documents; fewer
	// when the collection is smaller. No ordering guarantee.
	RandomSample(ctx context.Context, n int) ([]domain.Document, error)
	Get(ctx context.Context, id string) (domain.Document, error)
	// Create inserts doc and returns its generated (or natural) identifier.
	Create(ctx context.Context, doc domain.Document) (string, error)
	// Update merges fields into the existing document ($set semantics);
	// fields absent from the partial document are left untouched.
	Update(ctx context.Context, id string, fields domain.Document) error
	// Delete removes the document; deleting an absent id is a no-op success
	// and returns 0 affected.
	Delete(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// ResourceService wraps a ResourceRepository with identifier validation,
// required-field checks and ownership enforcement per the resource definition.
type ResourceService interface {
	Definition() domain.ResourceDefinition
	List(ctx context.Context, filter map[string]any) ([]domain.Document, error)
	RandomSample(ctx context.Context, n int) ([]domain.Document, error)
	Get(ctx context.Context, id string) (domain.Document, error)
	Create(ctx context.Context, p domain.Principal, doc domain.Document) (domain.Document, error)
	Update(ctx context.Context, p domain.Principal, id string, fields domain.Document) error
	Delete(ctx context.Context, p domain.Principal, id string) error
}
