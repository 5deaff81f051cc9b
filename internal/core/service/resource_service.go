package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
)

const maxSample = 20

// ResourceService is the single use-case implementation behind every generic
// catalog resource. Behavior differences between resources live entirely in
// the ResourceDefinition.
type ResourceService struct {
	def  domain.ResourceDefinition
	repo ports.ResourceRepository
	log  zerolog.Logger
}

func NewResourceService(def domain.ResourceDefinition, repo ports.ResourceRepository, log zerolog.Logger) *ResourceService {
	return &ResourceService{def: def, repo: repo, log: log}
}

func (s *ResourceService) Definition() domain.ResourceDefinition { return s.def }

func (s *ResourceService) List(ctx context.Context, filter map[string]any) ([]domain.Document, error) {
	return s.repo.List(ctx, filter)
}

func (s *ResourceService) RandomSample(ctx context.Context, n int) ([]domain.Document, error) {
	if n <= 0 || n > maxSample {
		n = maxSample
	}
	return s.repo.RandomSample(ctx, n)
}

func (s *ResourceService) Get(ctx context.Context, id string) (domain.Document, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *ResourceService) Create(ctx context.Context, p domain.Principal, doc domain.Document) (domain.Document, error) {
	for _, field := range s.def.Required {
		v, ok := doc[field]
		if !ok || v == "" || v == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMissingField, field)
		}
	}
	if s.def.OwnerField != "" {
		doc[s.def.OwnerField] = p.ID
	}

	id, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("resource", s.def.Name).Str("id", id).Msg("document created")

	return s.repo.Get(ctx, id)
}

func (s *ResourceService) Update(ctx context.Context, p domain.Principal, id string, fields domain.Document) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	if err := s.checkOwnership(ctx, p, id); err != nil {
		return err
	}
	// The identifier is immutable; strip it from partial updates along with
	// any attempt to reassign ownership.
	delete(fields, "_id")
	delete(fields, "id")
	if s.def.OwnerField != "" {
		delete(fields, s.def.OwnerField)
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *ResourceService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if err := s.checkID(id); err != nil {
		return err
	}
	if s.def.Policy.Delete == domain.AccessOwner {
		// Deleting an absent document is normally a no-op; the ownership
		// check tolerates absence for the same reason.
		if err := s.checkOwnership(ctx, p, id); err != nil {
			return err
		}
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		s.log.Debug().Str("resource", s.def.Name).Str("id", id).Msg("delete of absent document")
	}
	return nil
}

// checkID rejects malformed ObjectIDs before any repository call. Resources
// keyed by a natural field (guides by email) accept any non-empty id.
func (s *ResourceService) checkID(id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	if s.def.ByObjectID() {
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			return domain.ErrInvalidID
		}
	}
	return nil
}

// checkOwnership enforces the owner gate on owner-policied resources.
// Admins bypass. Absent documents pass through so the subsequent repository
// call reports NotFound (or no-op delete) consistently.
func (s *ResourceService) checkOwnership(ctx context.Context, p domain.Principal, id string) error {
	if s.def.OwnerField == "" || p.IsAdmin() {
		return nil
	}
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil
	}
	owner, _ := doc[s.def.OwnerField].(string)
	if owner != p.ID {
		return domain.ErrForbidden
	}
	return nil
}
