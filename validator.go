package propcheck

import (
	"encoding/json"
	"strings"

	"github.com/openregister/propcheck/i18n"
)

// Validator checks property definitions against the dialect grammar. It
// holds two immutable lookup sets established at construction and is safe
// for concurrent use by any number of goroutines.
type Validator struct {
	types      map[string]struct{}
	formats    map[string]struct{}
	maxDepth   int
	collectAll bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithMaxDepth overrides the recursion depth guard. Values below 1 are
// ignored.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxDepth = n
		}
	}
}

// WithCollectAll switches the Validator from fail-fast to aggregate
// reporting: a full traversal is performed and every issue found is
// returned.
func WithCollectAll() Option {
	return func(v *Validator) { v.collectAll = true }
}

// New builds a Validator with the fixed type and format enumerations.
func New(opts ...Option) *Validator {
	v := &Validator{
		types:    make(map[string]struct{}, len(validTypes)),
		formats:  make(map[string]struct{}, len(validStringFormats)),
		maxDepth: DefaultMaxDepth,
	}
	for _, t := range validTypes {
		v.types[t] = struct{}{}
	}
	for _, f := range validStringFormats {
		v.formats[f] = struct{}{}
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// ValidTypes returns the allowed property types in documentation order.
func (v *Validator) ValidTypes() []string {
	return append([]string(nil), validTypes...)
}

// ValidStringFormats returns the allowed string formats in documentation
// order. The leading empty string stands for "no format".
func (v *Validator) ValidStringFormats() []string {
	return append([]string(nil), validStringFormats...)
}

// ValidateProperty validates a single property definition rooted at path
// (use "" for the tree root). It returns nil on success or Issues on
// failure.
func (v *Validator) ValidateProperty(property map[string]any, path string) error {
	_, err := v.ParseProperty(property, path)
	return err
}

// ValidateProperties validates a name-keyed map of property definitions.
// Entries that are not objects are reported as invalid_property_shape at
// path/<name>. Which invalid entry is reported first follows map
// iteration order.
func (v *Validator) ValidateProperties(properties map[string]any, path string) error {
	w := &walker{v: v}
	w.properties(properties, At(path), 0)
	return w.err()
}

// ParseProperty validates property and returns its typed Definition.
// The definition is nil whenever an error is returned.
func (v *Validator) ParseProperty(property map[string]any, path string) (*Definition, error) {
	w := &walker{v: v}
	def := w.property(property, At(path), 0)
	if err := w.err(); err != nil {
		return nil, err
	}
	return def, nil
}

// walker carries traversal state for one validation call.
type walker struct {
	v    *Validator
	iss  Issues
	stop bool
}

func (w *walker) report(it Issue) {
	w.iss = AppendIssues(w.iss, it)
	if !w.v.collectAll {
		w.stop = true
	}
}

func (w *walker) err() error {
	if len(w.iss) > 0 {
		return w.iss
	}
	return nil
}

func (w *walker) properties(m map[string]any, ref PathRef, depth int) map[string]*Definition {
	out := make(map[string]*Definition, len(m))
	for name, raw := range m {
		entryRef := ref.Field(name)
		mm, ok := raw.(map[string]any)
		if !ok {
			w.report(Issue{
				Path:    entryRef.Pointer(),
				Code:    CodeInvalidPropertyShape,
				Message: i18n.T(CodeInvalidPropertyShape, nil),
				Hint:    "expected object",
			})
			if w.stop {
				return nil
			}
			continue
		}
		out[name] = w.property(mm, entryRef, depth)
		if w.stop {
			return nil
		}
	}
	return out
}

// property validates one definition node. The step order below mirrors
// the grammar: union short-circuit, type, format, items, properties,
// bounds, file constraints, enum, flags.
func (w *walker) property(m map[string]any, ref PathRef, depth int) *Definition {
	if depth > w.v.maxDepth {
		w.report(Issue{
			Path:    ref.Pointer(),
			Code:    CodeMaxDepthExceeded,
			Message: i18n.T(CodeMaxDepthExceeded, nil),
			Params:  map[string]any{"maxDepth": w.v.maxDepth},
		})
		return nil
	}

	def := &Definition{}

	// Union node: validate members only, skip every node-local check.
	if raw, ok := m["oneOf"]; ok {
		oneRef := ref.Field("oneOf")
		members, oks := raw.([]any)
		if !oks {
			w.report(Issue{
				Path:    oneRef.Pointer(),
				Code:    CodeInvalidPropertyShape,
				Message: i18n.T(CodeInvalidPropertyShape, nil),
				Hint:    "expected array",
			})
			return nil
		}
		def.OneOf = make([]*Definition, 0, len(members))
		for i, mv := range members {
			memberRef := oneRef.Index(i)
			mm, okm := mv.(map[string]any)
			if !okm {
				w.report(Issue{
					Path:    memberRef.Pointer(),
					Code:    CodeInvalidPropertyShape,
					Message: i18n.T(CodeInvalidPropertyShape, nil),
					Hint:    "expected object",
				})
				if w.stop {
					return nil
				}
				continue
			}
			def.OneOf = append(def.OneOf, w.property(mm, memberRef, depth+1))
			if w.stop {
				return nil
			}
		}
		return def
	}

	rawType, ok := m["type"]
	if !ok {
		w.report(Issue{
			Path:    ref.Pointer(),
			Code:    CodeMissingType,
			Message: i18n.T(CodeMissingType, nil),
		})
		return nil
	}
	typ, okt := rawType.(string)
	if _, known := w.v.types[typ]; !okt || !known {
		w.report(Issue{
			Path:    ref.Pointer(),
			Code:    CodeInvalidType,
			Message: i18n.T(CodeInvalidType, nil) + "; allowed: " + strings.Join(validTypes, ", "),
			Params:  map[string]any{"got": rawType, "allowed": w.v.ValidTypes()},
		})
		return nil
	}
	def.Type = typ

	if typ == TypeString {
		if raw, has := m["format"]; has {
			f, okf := raw.(string)
			if _, known := w.v.formats[f]; !okf || !known {
				w.report(Issue{
					Path:    ref.Field("format").Pointer(),
					Code:    CodeInvalidFormat,
					Message: i18n.T(CodeInvalidFormat, nil),
					Params:  map[string]any{"got": raw, "allowed": w.v.ValidStringFormats()},
				})
				if w.stop {
					return nil
				}
			} else {
				def.Format = f
			}
		}
	}

	if typ == TypeArray {
		if raw, has := m["items"]; has {
			itemsRef := ref.Field("items")
			mm, okm := raw.(map[string]any)
			switch {
			case !okm:
				w.report(Issue{
					Path:    itemsRef.Pointer(),
					Code:    CodeInvalidPropertyShape,
					Message: i18n.T(CodeInvalidPropertyShape, nil),
					Hint:    "expected object",
				})
			case hasRef(mm):
				// $ref items are left unresolved and not descended into.
				def.ItemsRef, _ = mm["$ref"].(string)
			default:
				def.Items = w.property(mm, itemsRef, depth+1)
			}
			if w.stop {
				return nil
			}
		}
	}

	if typ == TypeObject {
		if raw, has := m["properties"]; has {
			propsRef := ref.Field("properties")
			mm, okm := raw.(map[string]any)
			if !okm {
				w.report(Issue{
					Path:    propsRef.Pointer(),
					Code:    CodeInvalidPropertyShape,
					Message: i18n.T(CodeInvalidPropertyShape, nil),
					Hint:    "expected object",
				})
			} else {
				def.Properties = w.properties(mm, propsRef, depth+1)
			}
			if w.stop {
				return nil
			}
		}
	}

	if typ == TypeNumber || typ == TypeInteger {
		w.bounds(m, ref, def)
		if w.stop {
			return nil
		}
	}

	if typ == TypeFile {
		def.File = w.fileConstraints(m, ref)
		if w.stop {
			return nil
		}
	}

	if raw, has := m["enum"]; has {
		vals, oke := raw.([]any)
		if !oke || len(vals) == 0 {
			w.report(Issue{
				Path:    ref.Field("enum").Pointer(),
				Code:    CodeInvalidEnum,
				Message: i18n.T(CodeInvalidEnum, nil),
				Hint:    "expected non-empty array",
			})
			if w.stop {
				return nil
			}
		} else {
			def.Enum = vals
		}
	}

	for _, name := range []string{"visible", "hideOnCollection", "hideOnForm"} {
		raw, has := m[name]
		if !has {
			continue
		}
		b, okb := raw.(bool)
		if !okb {
			w.report(Issue{
				Path:    ref.Field(name).Pointer(),
				Code:    CodeInvalidFlag,
				Message: i18n.T(CodeInvalidFlag, nil),
				Params:  map[string]any{"field": name, "got": raw},
			})
			if w.stop {
				return nil
			}
			continue
		}
		switch name {
		case "visible":
			def.Visible = &b
		case "hideOnCollection":
			def.HideOnCollection = &b
		case "hideOnForm":
			def.HideOnForm = &b
		}
	}

	return def
}

func (w *walker) bounds(m map[string]any, ref PathRef, def *Definition) {
	if raw, has := m["minimum"]; has {
		f, okn := asFloat(raw)
		if !okn {
			w.report(Issue{
				Path:    ref.Field("minimum").Pointer(),
				Code:    CodeInvalidBound,
				Message: i18n.T(CodeInvalidBound, nil),
				Hint:    "expected number",
				Params:  map[string]any{"field": "minimum", "got": raw},
			})
			if w.stop {
				return
			}
		} else {
			def.Minimum = &f
		}
	}
	if raw, has := m["maximum"]; has {
		f, okn := asFloat(raw)
		if !okn {
			w.report(Issue{
				Path:    ref.Field("maximum").Pointer(),
				Code:    CodeInvalidBound,
				Message: i18n.T(CodeInvalidBound, nil),
				Hint:    "expected number",
				Params:  map[string]any{"field": "maximum", "got": raw},
			})
			if w.stop {
				return
			}
		} else {
			def.Maximum = &f
		}
	}
	if def.Minimum != nil && def.Maximum != nil && *def.Minimum > *def.Maximum {
		w.report(Issue{
			Path:    ref.Field("minimum").Pointer(),
			Code:    CodeInvalidBound,
			Message: i18n.T(CodeInvalidBound, nil),
			Hint:    "minimum must not exceed maximum",
			Params:  map[string]any{"minimum": *def.Minimum, "maximum": *def.Maximum},
		})
	}
}

func hasRef(m map[string]any) bool {
	_, ok := m["$ref"]
	return ok
}

// asFloat widens the numeric forms produced by JSON and YAML decoding.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
