package api

import (
	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/infrastructure/db/mongo"
)

// Resources declares every generic catalog resource the API serves. Each
// entry is the complete, reviewed access policy for that resource; adding a
// collection to the API means adding a definition here.
var Resources = []domain.ResourceDefinition{
	{
		Name:       "packages",
		Collection: mongo.CollectionPackages,
		Required:   []string{"title", "destination", "price"},
		Random:     true,
		Policy: domain.Policy{
			Read:   domain.AccessPublic,
			Create: domain.AccessAdmin,
			Update: domain.AccessAdmin,
			Delete: domain.AccessAdmin,
		},
	},
	{
		Name:       "guides",
		Collection: mongo.CollectionTourGuides,
		IDField:    "email",
		Required:   []string{"name", "email"},
		Random:     true,
		Policy: domain.Policy{
			Read:   domain.AccessPublic,
			Create: domain.AccessAdmin,
			Update: domain.AccessAdmin,
			Delete: domain.AccessAdmin,
		},
	},
	{
		Name:       "stories",
		Collection: mongo.CollectionStories,
		Required:   []string{"title", "content", "author_email"},
		OwnerField: "author_id",
		Random:     true,
		Lookups: []domain.FieldLookup{
			{Segment: "user", Field: "author_email"},
		},
		Policy: domain.Policy{
			Read:   domain.AccessPublic,
			Create: domain.AccessAuthenticated,
			Update: domain.AccessOwner,
			Delete: domain.AccessOwner,
		},
	},
	{
		Name:       "announcements",
		Collection: mongo.CollectionAnnouncements,
		Required:   []string{"title", "body"},
		Policy: domain.Policy{
			Read:   domain.AccessPublic,
			Create: domain.AccessAdmin,
			Update: domain.AccessAdmin,
			Delete: domain.AccessAdmin,
		},
	},
}
