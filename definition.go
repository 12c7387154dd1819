package propcheck

// Definition is the typed view of a validated property definition.
// A definition is either a union node (OneOf non-nil, nothing else set)
// or a concrete typed node. Constraint fields irrelevant to the declared
// type are never populated.
type Definition struct {
	// OneOf marks a union node. Members were validated independently.
	OneOf []*Definition

	Type   string
	Format string // string type only; "" means no format

	// Items is the validated element definition for array types. It stays
	// nil when the items node carries a $ref, in which case ItemsRef holds
	// the unresolved target.
	Items    *Definition
	ItemsRef string

	Properties map[string]*Definition // object type only

	Minimum *float64 // number/integer only
	Maximum *float64

	Enum []any

	Visible          *bool
	HideOnCollection *bool
	HideOnForm       *bool

	File *FileConstraints // file type only
}

// FileConstraints holds the validated file-only constraint fields.
type FileConstraints struct {
	AllowedTypes []string
	MaxSize      *int64
	AllowedTags  []string
	AutoTags     []string
}

// IsUnion reports whether the definition is a oneOf union node.
func (d *Definition) IsUnion() bool { return d != nil && d.OneOf != nil }

// ParseDefinition validates m with a default Validator and returns the
// typed definition tree. Parse and validation happen in one pass; the
// returned tree is nil when validation fails.
func ParseDefinition(m map[string]any) (*Definition, error) {
	return New().ParseProperty(m, "")
}
