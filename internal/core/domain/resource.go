package domain

// Document is a schemaless resource record. The catalog resources (packages,
// guides, stories, announcements) are intentionally free-form: the store
// persists whatever the caller provides beyond the declared required fields.
type Document map[string]any

// AccessLevel gates one operation on a resource.
type AccessLevel int

const (
	// AccessPublic requires no session.
	AccessPublic AccessLevel = iota
	// AccessAuthenticated requires any valid session.
	AccessAuthenticated
	// AccessOwner requires the principal to own the document (admins bypass).
	AccessOwner
	// AccessAdmin requires the admin role.
	AccessAdmin
)

// Policy assigns an access level to each operation of a resource. Every
// resource declares its policy explicitly rather than inheriting a default,
// so access review happens in one place.
type Policy struct {
	Read   AccessLevel
	Create AccessLevel
	Update AccessLevel
	Delete AccessLevel
}

// ResourceDefinition declares one generic CRUD resource. Adding a resource to
// the API is a registration here plus a route block, not a new handler.
type ResourceDefinition struct {
	// Name is the URL path segment, e.g. "packages".
	Name string
	// Collection is the backing MongoDB collection.
	Collection string
	// IDField is the identifier used in /:id routes. "_id" (the default)
	// means a hex ObjectID validated before any database call; any other
	// value is treated as an opaque natural key, e.g. "email" for guides.
	IDField string
	// Required lists fields that must be present and non-empty on create.
	Required []string
	// OwnerField, when set, names the field holding the creator's user id.
	// It is stamped on create and checked on owner-gated updates/deletes.
	OwnerField string
	// Random enables the GET /<name>/random discovery endpoint.
	Random bool
	// Lookups registers GET /<name>/<segment>/:value routes filtering on a
	// single field, e.g. stories by author email.
	Lookups []FieldLookup
	Policy  Policy
}

// FieldLookup declares one filtered list route on a resource.
type FieldLookup struct {
	Segment string
	Field   string
}

// ByObjectID reports whether the resource is keyed by Mongo ObjectID.
func (d ResourceDefinition) ByObjectID() bool {
	return d.IDField == "" || d.IDField == "_id"
}
