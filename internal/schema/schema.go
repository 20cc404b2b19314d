package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed interface.cue
var interfaceSource string

var (
	compileOnce sync.Once
	cueCtx      *cue.Context
	compiled    cue.Value
	compileErr  error
)

// compile parses the embedded interface exactly once.
// Uses CUE SDK's Go API directly (not CLI subprocess).
func compile() (cue.Value, error) {
	compileOnce.Do(func() {
		cueCtx = cuecontext.New()
		compiled = cueCtx.CompileString(interfaceSource, cue.Filename("interface.cue"))
		if err := compiled.Err(); err != nil {
			compileErr = fmt.Errorf("compile interface schema: %s", cueerrors.Details(err, nil))
		}
	})
	return compiled, compileErr
}

// EntryPoints returns the entry point names in interface order.
func EntryPoints() []string {
	return []string{
		"add_category",
		"set_metadata",
		"mint",
		"balance_of",
		"expiry_of",
		"token_metadata",
		"list_categories",
		"transfer",
		"update_operator",
		"operator_of",
	}
}

// disabled entry points accept any params and reject at dispatch.
var disabled = map[string]bool{
	"transfer":        true,
	"update_operator": true,
	"operator_of":     true,
}

// Disabled reports whether an entry point is permanently disabled.
func Disabled(entry string) bool {
	return disabled[entry]
}

// ValidateParams checks raw JSON params against the entry point's
// declared shape. Empty params are treated as the empty object.
//
// Returns an error for unknown entry points, malformed JSON, missing
// or extra fields, and out-of-range values.
func ValidateParams(entry string, raw []byte) error {
	root, err := compile()
	if err != nil {
		return err
	}

	sch := root.LookupPath(cue.ParsePath("#" + entry))
	if !sch.Exists() {
		return fmt.Errorf("unknown entry point %q", entry)
	}

	if len(raw) == 0 {
		raw = []byte("{}")
	}

	expr, err := cuejson.Extract("params.json", raw)
	if err != nil {
		return fmt.Errorf("%s params: %w", entry, err)
	}

	val := cueCtx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return fmt.Errorf("%s params: %w", entry, err)
	}

	unified := sch.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%s params: %s", entry, cueerrors.Details(err, nil))
	}

	return nil
}

// EntrySchema describes one entry point for export.
type EntrySchema struct {
	Name     string            `json:"name"`
	Disabled bool              `json:"disabled,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
}

// Export renders the interface as deterministic JSON: entry points in
// interface order, parameter fields with their primitive kinds.
func Export() ([]byte, error) {
	root, err := compile()
	if err != nil {
		return nil, err
	}

	var entries []EntrySchema
	for _, name := range EntryPoints() {
		entry := EntrySchema{Name: name, Disabled: disabled[name]}

		if !entry.Disabled {
			sch := root.LookupPath(cue.ParsePath("#" + name))
			if !sch.Exists() {
				return nil, fmt.Errorf("entry point %q missing from interface", name)
			}

			params, err := fieldKinds(sch)
			if err != nil {
				return nil, fmt.Errorf("entry point %q: %w", name, err)
			}
			entry.Params = params
		}

		entries = append(entries, entry)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal interface: %w", err)
	}
	return append(data, '\n'), nil
}

// fieldKinds maps each declared param field to its kind name.
// Returns nil for an empty param struct.
func fieldKinds(sch cue.Value) (map[string]string, error) {
	iter, err := sch.Fields(cue.Optional(true))
	if err != nil {
		return nil, err
	}

	kinds := make(map[string]string)
	for iter.Next() {
		kind, err := kindName(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", iter.Label(), err)
		}
		kinds[iter.Label()] = kind
	}

	if len(kinds) == 0 {
		return nil, nil
	}
	return kinds, nil
}

// kindName converts a CUE value's kind to its exported name.
func kindName(v cue.Value) (string, error) {
	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string", nil
	case cue.IntKind:
		return "int", nil
	case cue.BoolKind:
		return "bool", nil
	case cue.ListKind:
		return "array", nil
	case cue.StructKind:
		return "object", nil
	default:
		return "", fmt.Errorf("unsupported kind %v", v.IncompleteKind())
	}
}
