package resource

// Document is an opaque JSON resource. Beyond the identifier there is no
// fixed schema; clients store whatever shape they need.
type Document map[string]any

const (
	FieldID   = "id"
	FieldName = "name"
	FieldSlug = "slug"
)
