package propcheck

// Property type names accepted by the dialect.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeNull    = "null"
	TypeFile    = "file"
)

// validTypes is the fixed type enumeration, in documentation order.
var validTypes = []string{
	TypeString,
	TypeNumber,
	TypeInteger,
	TypeBoolean,
	TypeArray,
	TypeObject,
	TypeNull,
	TypeFile,
}

// validStringFormats is the fixed format enumeration for string-typed
// properties. The empty string means "no format".
var validStringFormats = []string{
	"",
	"text",
	"markdown",
	"html",
	"date-time",
	"date",
	"time",
	"duration",
	"email",
	"idn-email",
	"hostname",
	"idn-hostname",
	"ipv4",
	"ipv6",
	"uri",
	"uri-reference",
	"iri",
	"iri-reference",
	"uuid",
	"uri-template",
	"json-pointer",
	"relative-json-pointer",
	"regex",
	"url",
	"color",
	"color-hex",
	"color-hex-alpha",
	"color-rgb",
	"color-rgba",
	"color-hsl",
	"color-hsla",
	"semver",
}

// MaxFileSize is the ceiling for the maxSize constraint on file
// properties (100 MiB).
const MaxFileSize = 104857600

// MaxTagLength is the character limit for allowedTags/autoTags entries.
const MaxTagLength = 50

// DefaultMaxDepth bounds recursion over properties/items/oneOf. Inputs
// nesting deeper than this are reported as max_depth_exceeded instead of
// exhausting the call stack.
const DefaultMaxDepth = 64
