// Package derive implements reflection-based conversion between Go structs
// and AMQP composites, the runtime counterpart of the codegen facility
// named in OASIS AMQP 1.0's composite type annotations. Go has no
// procedural-macro facility, so this package walks struct tags with
// reflect.Value the way encoding/json walks `json:"..."` tags, rather than
// generating code.
//
// A record opts in with a package-level descriptor tag on an embedded
// marker field and a position tag on each data field:
//
//	type Open struct {
//	    _              derive.Marker `amqp:"descriptor=amqp:open:list,code=0x10"`
//	    ContainerID    string `amqp:"field,0"`
//	    HostName       string `amqp:"field,1,optional"`
//	}
package derive

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/relaywire/amqp10/amqperr"
	"github.com/relaywire/amqp10/composite"
	"github.com/relaywire/amqp10/primitive"
)

// Marker is embedded (typically as an unexported blank field) in every
// record type derive supports, carrying its descriptor tag.
type Marker struct{}

var markerType = reflect.TypeOf(Marker{})

type fieldSpec struct {
	index    int
	position int
	optional bool
}

type recordSpec struct {
	descriptor composite.Descriptor
	fields     []fieldSpec // ordered by position
}

// recordType returns t, unwrapped through any chain of pointer or slice
// indirection, and whether it is itself a derive-tagged record (a struct
// embedding Marker).
func recordType(t reflect.Type) (reflect.Type, bool) {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Type == markerType {
			return t, true
		}
	}
	return nil, false
}

// detectCycle walks t's declared fields for a derive-tagged record type
// that recurs on its own path, directly or transitively, rejecting it with
// amqp:specification-non-compliant per §4.6's "codegen rejects cyclic
// descriptors" rule. path tracks record types currently being visited on
// the current branch, not every type ever seen, so the same record
// reachable via two independent fields (a diamond, not a cycle) is fine.
func detectCycle(t reflect.Type, path map[reflect.Type]bool) error {
	rec, ok := recordType(t)
	if !ok {
		return nil
	}
	if path[rec] {
		return fmt.Errorf("derive: %s has a cyclic descriptor reference: %w", rec.Name(), amqperr.ErrSpecificationNonCompliant)
	}
	path[rec] = true
	defer delete(path, rec)

	for i := 0; i < rec.NumField(); i++ {
		f := rec.Field(i)
		if f.Type == markerType {
			continue
		}
		if _, ok := f.Tag.Lookup("amqp"); !ok {
			continue
		}
		if err := detectCycle(f.Type, path); err != nil {
			return err
		}
	}
	return nil
}

func parseRecordSpec(t reflect.Type) (recordSpec, error) {
	if err := detectCycle(t, map[reflect.Type]bool{}); err != nil {
		return recordSpec{}, err
	}

	var spec recordSpec
	found := false
	byPosition := map[int]fieldSpec{}
	maxPos := -1

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("amqp")
		if !ok {
			continue
		}
		if f.Type == markerType {
			desc, err := parseDescriptorTag(tag)
			if err != nil {
				return recordSpec{}, err
			}
			spec.descriptor = desc
			found = true
			continue
		}
		fs, err := parseFieldTag(tag, i)
		if err != nil {
			return recordSpec{}, err
		}
		byPosition[fs.position] = fs
		if fs.position > maxPos {
			maxPos = fs.position
		}
	}
	if !found {
		return recordSpec{}, fmt.Errorf("derive: %s has no amqp descriptor marker field", t.Name())
	}
	for p := 0; p <= maxPos; p++ {
		fs, ok := byPosition[p]
		if !ok {
			return recordSpec{}, fmt.Errorf("derive: %s is missing field at position %d", t.Name(), p)
		}
		spec.fields = append(spec.fields, fs)
	}
	return spec, nil
}

func parseDescriptorTag(tag string) (composite.Descriptor, error) {
	parts := strings.Split(tag, ",")
	var sym string
	var code uint64
	haveCode := false
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "descriptor":
			sym = kv[1]
		case "code":
			n, err := strconv.ParseUint(strings.TrimPrefix(kv[1], "0x"), 16, 64)
			if err != nil {
				return composite.Descriptor{}, fmt.Errorf("derive: invalid descriptor code %q: %w", kv[1], err)
			}
			code = n
			haveCode = true
		}
	}
	if sym == "" {
		return composite.Descriptor{}, fmt.Errorf("derive: descriptor tag %q missing descriptor symbol", tag)
	}
	if !isASCIIDescriptor(sym) {
		return composite.Descriptor{}, fmt.Errorf("derive: descriptor %q is not 7-bit ASCII: %w", sym, amqperr.ErrInvalidField)
	}
	if haveCode {
		return composite.CodeDescriptor(code), nil
	}
	return composite.SymbolDescriptor(sym), nil
}

func isASCIIDescriptor(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

func parseFieldTag(tag string, structIndex int) (fieldSpec, error) {
	parts := strings.Split(tag, ",")
	if len(parts) < 2 || parts[0] != "field" {
		return fieldSpec{}, fmt.Errorf("derive: malformed field tag %q", tag)
	}
	pos, err := strconv.Atoi(parts[1])
	if err != nil {
		return fieldSpec{}, fmt.Errorf("derive: malformed field position in tag %q: %w", tag, err)
	}
	optional := false
	for _, p := range parts[2:] {
		if p == "optional" {
			optional = true
		}
	}
	return fieldSpec{index: structIndex, position: pos, optional: optional}, nil
}

// Marshal converts v, a pointer to or value of a tagged struct, into its
// composite form, pushing fields in declared position order.
func Marshal(v any) (composite.Composite, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return composite.Composite{}, fmt.Errorf("derive: Marshal requires a struct, got %s", rv.Kind())
	}
	spec, err := parseRecordSpec(rv.Type())
	if err != nil {
		return composite.Composite{}, err
	}

	b := composite.NewBuilder(spec.descriptor)
	for _, fs := range spec.fields {
		p, err := toPrimitive(rv.Field(fs.index))
		if err != nil {
			return composite.Composite{}, fmt.Errorf("derive: field %d: %w", fs.position, err)
		}
		b.Push(p)
	}
	return b.Build(), nil
}

// Unmarshal populates v, a pointer to a tagged struct, from c, failing with
// amqp:decode-error on a type mismatch. A field beyond the composite's
// encoded fields is treated as null ("absent trailing field is null"): an
// optional or pointer field is left at its zero value, while a mandatory
// field fails with amqp:decode-error.
func Unmarshal(c composite.Composite, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("derive: Unmarshal requires a pointer to struct")
	}
	rv = rv.Elem()
	spec, err := parseRecordSpec(rv.Type())
	if err != nil {
		return err
	}
	for _, fs := range spec.fields {
		p, ok := c.Field(fs.position)
		if !ok {
			continue
		}
		if err := fromPrimitive(p, rv.Field(fs.index), fs.optional); err != nil {
			return fmt.Errorf("derive: field %d: %w", fs.position, err)
		}
	}
	return nil
}

// DescriptorOf returns the descriptor a tagged struct type declares,
// without requiring an instance.
func DescriptorOf(v any) (composite.Descriptor, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	spec, err := parseRecordSpec(rv.Type())
	if err != nil {
		return composite.Descriptor{}, err
	}
	return spec.descriptor, nil
}
