package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shomvob/travels-api/internal/core/domain"
)

type stubResourceRepo struct {
	docs    map[string]domain.Document
	nextID  int
	calls   int
	updates map[string]domain.Document
}

func newStubResourceRepo() *stubResourceRepo {
	return &stubResourceRepo{
		docs:    make(map[string]domain.Document),
		updates: make(map[string]domain.Document),
	}
}

func cloneDoc(d domain.Document) domain.Document {
	out := make(domain.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (r *stubResourceRepo) List(_ context.Context, filter map[string]any) ([]domain.Document, error) {
	r.calls++
	var out []domain.Document
	for _, d := range r.docs {
		match := true
		for k, v := range filter {
			if d[k] != v {
				match = false
				break
			}
		}
		if match {
			out = append(out, cloneDoc(d))
		}
	}
	return out, nil
}

func (r *stubResourceRepo) RandomSample(_ context.Context, n int) ([]domain.Document, error) {
	r.calls++
	var out []domain.Document
	for _, d := range r.docs {
		if len(out) == n {
			break
		}
		out = append(out, cloneDoc(d))
	}
	return out, nil
}

func (r *stubResourceRepo) Get(_ context.Context, id string) (domain.Document, error) {
	r.calls++
	if d, ok := r.docs[id]; ok {
		return cloneDoc(d), nil
	}
	return nil, domain.ErrNotFound
}

func (r *stubResourceRepo) Create(_ context.Context, doc domain.Document) (string, error) {
	r.calls++
	r.nextID++
	id := fmt.Sprintf("%024x", r.nextID)
	stored := cloneDoc(doc)
	stored["_id"] = id
	r.docs[id] = stored
	return id, nil
}

func (r *stubResourceRepo) Update(_ context.Context, id string, fields domain.Document) error {
	r.calls++
	d, ok := r.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.updates[id] = cloneDoc(fields)
	for k, v := range fields {
		d[k] = v
	}
	return nil
}

func (r *stubResourceRepo) Delete(_ context.Context, id string) (int64, error) {
	r.calls++
	if _, ok := r.docs[id]; !ok {
		return 0, nil
	}
	delete(r.docs, id)
	return 1, nil
}

func (r *stubResourceRepo) Count(_ context.Context) (int64, error) {
	r.calls++
	return int64(len(r.docs)), nil
}

var packagesDef = domain.ResourceDefinition{
	Name:       "packages",
	Collection: "packages",
	Required:   []string{"title", "destination", "price"},
	Policy: domain.Policy{
		Read:   domain.AccessPublic,
		Create: domain.AccessAdmin,
		Update: domain.AccessAdmin,
		Delete: domain.AccessAdmin,
	},
}

var storiesDef = domain.ResourceDefinition{
	Name:       "stories",
	Collection: "stories",
	Required:   []string{"title", "content", "author_email"},
	OwnerField: "author_id",
	Policy: domain.Policy{
		Read:   domain.AccessPublic,
		Create: domain.AccessAuthenticated,
		Update: domain.AccessOwner,
		Delete: domain.AccessOwner,
	},
}

var guidesDef = domain.ResourceDefinition{
	Name:       "guides",
	Collection: "tour_guides",
	IDField:    "email",
	Required:   []string{"name", "email"},
}

var admin = domain.Principal{ID: "adminid", Role: domain.RoleAdmin}

func packageDoc() domain.Document {
	return domain.Document{"title": "Sundarbans Cruise", "destination": "Khulna", "price": 320.0}
}

func TestResourceService_Create_RequiredFields(t *testing.T) {
	svc := NewResourceService(packagesDef, newStubResourceRepo(), zerolog.Nop())

	doc := packageDoc()
	delete(doc, "destination")
	if _, err := svc.Create(context.Background(), admin, doc); !errors.Is(err, domain.ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}

	stored, err := svc.Create(context.Background(), admin, packageDoc())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored["_id"] == "" || stored["_id"] == nil {
		t.Fatalf("expected stored document to carry its id, got %+v", stored)
	}
}

func TestResourceService_Create_StampsOwner(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(storiesDef, repo, zerolog.Nop())

	author := domain.Principal{ID: "user1", Role: domain.RoleUser}
	stored, err := svc.Create(context.Background(), author, domain.Document{
		"title": "Dawn at Cox's Bazar", "content": "...", "author_email": "u@example.com",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if stored["author_id"] != "user1" {
		t.Fatalf("expected owner stamped from principal, got %v", stored["author_id"])
	}
}

func TestResourceService_Get_MalformedID(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(packagesDef, repo, zerolog.Nop())

	if _, err := svc.Get(context.Background(), "zzz"); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("malformed id must be rejected before any repository call")
	}
}

func TestResourceService_Get_NaturalKey(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(guidesDef, repo, zerolog.Nop())

	// Guides are keyed by email: any non-empty id is structurally valid.
	if _, err := svc.Get(context.Background(), "guide@example.com"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound from repo, got %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected repository lookup for natural key")
	}
}

func TestResourceService_Update_MergeOnly(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(packagesDef, repo, zerolog.Nop())

	stored, _ := svc.Create(context.Background(), admin, packageDoc())
	id := stored["_id"].(string)

	if err := svc.Update(context.Background(), admin, id, domain.Document{"price": 350.0, "_id": "hijack"}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Only the price reached the repository; the identifier was stripped.
	fields := repo.updates[id]
	if len(fields) != 1 || fields["price"] != 350.0 {
		t.Fatalf("unexpected update fields: %+v", fields)
	}

	after, _ := svc.Get(context.Background(), id)
	if after["title"] != "Sundarbans Cruise" {
		t.Fatalf("merge update clobbered an untouched field: %+v", after)
	}
}

func TestResourceService_Update_OwnerEnforced(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(storiesDef, repo, zerolog.Nop())

	author := domain.Principal{ID: "user1", Role: domain.RoleUser}
	stored, _ := svc.Create(context.Background(), author, domain.Document{
		"title": "t", "content": "c", "author_email": "u@example.com",
	})
	id := stored["_id"].(string)

	other := domain.Principal{ID: "user2", Role: domain.RoleUser}
	if err := svc.Update(context.Background(), other, id, domain.Document{"title": "stolen"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.Update(context.Background(), author, id, domain.Document{"title": "mine"}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if err := svc.Update(context.Background(), admin, id, domain.Document{"title": "moderated"}); err != nil {
		t.Fatalf("admin bypass failed: %v", err)
	}
}

func TestResourceService_Delete_AbsentIsNoop(t *testing.T) {
	svc := NewResourceService(packagesDef, newStubResourceRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), admin, "66f0a1b2c3d4e5f6a7b8c9d0"); err != nil {
		t.Fatalf("expected no-op success on absent id, got %v", err)
	}
}

func TestResourceService_RandomSample_Capped(t *testing.T) {
	repo := newStubResourceRepo()
	svc := NewResourceService(packagesDef, repo, zerolog.Nop())

	for i := 0; i < 3; i++ {
		doc := packageDoc()
		doc["title"] = fmt.Sprintf("tour %d", i)
		_, _ = svc.Create(context.Background(), admin, doc)
	}

	docs, err := svc.RandomSample(context.Background(), 100)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}
	if len(docs) > 3 {
		t.Fatalf("sample returned more documents than exist: %d", len(docs))
	}
}
