package propcheck

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/openregister/propcheck/i18n"
)

// mimePattern matches "type/subtype" with the restricted character sets of
// RFC 6838 as the dialect applies them: alphanumerics plus !#$&-^_ for the
// type, the same plus '.' for the subtype.
var mimePattern = regexp.MustCompile(`^[0-9A-Za-z!#$&^_-]+/[0-9A-Za-z!#$&^_.-]+$`)

// fileConstraints validates the file-only constraint fields. The caller
// has already confirmed type == "file". Evaluation order is fixed:
// allowedTypes, maxSize, allowedTags, autoTags. The field checks are
// independent of each other.
func (w *walker) fileConstraints(m map[string]any, ref PathRef) *FileConstraints {
	fc := &FileConstraints{}

	if raw, has := m["allowedTypes"]; has {
		typesRef := ref.Field("allowedTypes")
		vals, ok := raw.([]any)
		if !ok {
			w.report(Issue{
				Path:    typesRef.Pointer(),
				Code:    CodeInvalidMimeType,
				Message: i18n.T(CodeInvalidMimeType, nil),
				Hint:    "expected array",
			})
			if w.stop {
				return nil
			}
		}
		for i, mv := range vals {
			s, oks := mv.(string)
			if !oks || !mimePattern.MatchString(s) {
				w.report(Issue{
					Path:    typesRef.Index(i).Pointer(),
					Code:    CodeInvalidMimeType,
					Message: i18n.T(CodeInvalidMimeType, nil),
					Hint:    "expected type/subtype",
					Params:  map[string]any{"index": i, "got": mv},
				})
				if w.stop {
					return nil
				}
				continue
			}
			fc.AllowedTypes = append(fc.AllowedTypes, s)
		}
	}

	if raw, has := m["maxSize"]; has {
		sizeRef := ref.Field("maxSize")
		f, okn := asFloat(raw)
		if !okn || f < 0 || f > MaxFileSize {
			w.report(Issue{
				Path:    sizeRef.Pointer(),
				Code:    CodeInvalidMaxSize,
				Message: i18n.T(CodeInvalidMaxSize, nil),
				Hint:    "expected integer between 0 and 104857600",
				Params:  map[string]any{"got": raw, "max": MaxFileSize},
			})
			if w.stop {
				return nil
			}
		} else {
			size := int64(f)
			fc.MaxSize = &size
		}
	}

	fc.AllowedTags = w.tagList(m, ref, "allowedTags")
	if w.stop {
		return nil
	}
	fc.AutoTags = w.tagList(m, ref, "autoTags")
	if w.stop {
		return nil
	}

	return fc
}

// tagList validates one of the tag list fields. Every element must be a
// non-empty (post-trim) string of at most MaxTagLength characters.
func (w *walker) tagList(m map[string]any, ref PathRef, field string) []string {
	raw, has := m[field]
	if !has {
		return nil
	}
	listRef := ref.Field(field)
	vals, ok := raw.([]any)
	if !ok {
		w.report(Issue{
			Path:    listRef.Pointer(),
			Code:    CodeInvalidTag,
			Message: i18n.T(CodeInvalidTag, nil),
			Hint:    "expected array",
			Params:  map[string]any{"list": field},
		})
		return nil
	}
	out := make([]string, 0, len(vals))
	for i, mv := range vals {
		s, oks := mv.(string)
		if !oks || strings.TrimSpace(s) == "" || utf8.RuneCountInString(s) > MaxTagLength {
			w.report(Issue{
				Path:    listRef.Index(i).Pointer(),
				Code:    CodeInvalidTag,
				Message: i18n.T(CodeInvalidTag, nil),
				Hint:    "expected non-empty string of at most 50 characters",
				Params:  map[string]any{"list": field, "index": i, "got": mv},
			})
			if w.stop {
				return nil
			}
			continue
		}
		out = append(out, s)
	}
	return out
}
