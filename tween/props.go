package tween

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// step is one hop in a property path: a map key or struct field name, or a
// slice index.
type step struct {
	name    string
	index   int
	isIndex bool
}

type propPath []step

func (p propPath) child(s step) propPath {
	out := make(propPath, len(p)+1)
	copy(out, p)
	out[len(p)] = s
	return out
}

// String renders the path as "some.style.opacity" or "points[2].x".
func (p propPath) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.name)
	}
	return b.String()
}

// leafKind is decided once when a property is bound and never re-inferred.
type leafKind int

const (
	leafNumber leafKind = iota
	leafNumericString
)

// endpoint is a goal value. Relative endpoints ("+N", "-N") are offsets from
// the start value.
type endpoint struct {
	value    float64
	relative bool
}

func (e endpoint) resolve(base float64) float64 {
	if e.relative {
		return base + e.value
	}
	return e.value
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isList(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

func isRecord(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Struct:
		return true
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	}
	return false
}

func isContainer(v reflect.Value) bool {
	return isList(v) || isRecord(v)
}

// children lists the steps of a container in a stable order. Map keys are sorted.
func children(v reflect.Value) []step {
	switch {
	case isList(v):
		out := make([]step, v.Len())
		for i := range out {
			out[i] = step{index: i, isIndex: true}
		}
		return out
	case v.Kind() == reflect.Map && isRecord(v):
		keys := v.MapKeys()
		out := make([]step, 0, len(keys))
		for _, k := range keys {
			out = append(out, step{name: k.String()})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
		return out
	case v.Kind() == reflect.Struct:
		t := v.Type()
		out := make([]step, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				out = append(out, step{name: f.Name})
			}
		}
		return out
	}
	return nil
}

// child resolves one step below v, which must already be indirected.
func child(v reflect.Value, s step) (reflect.Value, bool) {
	if !v.IsValid() {
		return reflect.Value{}, false
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if !s.isIndex || s.index < 0 || s.index >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(s.index), true
	case reflect.Map:
		if s.isIndex || v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		e := v.MapIndex(reflect.ValueOf(s.name).Convert(v.Type().Key()))
		return e, e.IsValid()
	case reflect.Struct:
		if s.isIndex {
			return reflect.Value{}, false
		}
		f, ok := v.Type().FieldByName(s.name)
		if !ok || !f.IsExported() {
			return reflect.Value{}, false
		}
		fv, err := v.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}, false
		}
		return fv, true
	}
	return reflect.Value{}, false
}

// lookup walks root along p and returns the indirected leaf.
func lookup(root any, p propPath) (reflect.Value, bool) {
	v := reflect.ValueOf(root)
	for _, s := range p {
		var ok bool
		if v, ok = child(indirect(v), s); !ok {
			return reflect.Value{}, false
		}
	}
	v = indirect(v)
	return v, v.IsValid()
}

// store writes value at p, converting it to typ. Returns false when the slot
// can't be written, such as a struct reached without a pointer.
func store(root any, p propPath, typ reflect.Type, value float64) bool {
	if len(p) == 0 {
		return false
	}
	v := reflect.ValueOf(root)
	for _, s := range p[:len(p)-1] {
		var ok bool
		if v, ok = child(indirect(v), s); !ok {
			return false
		}
	}
	parent := indirect(v)
	last := p[len(p)-1]
	nv, ok := makeValue(typ, value)
	if !ok {
		return false
	}

	if parent.Kind() == reflect.Map {
		if last.isIndex || parent.IsNil() {
			return false
		}
		if !nv.Type().AssignableTo(parent.Type().Elem()) {
			return false
		}
		parent.SetMapIndex(reflect.ValueOf(last.name).Convert(parent.Type().Key()), nv)
		return true
	}

	slot, ok := child(parent, last)
	if !ok {
		return false
	}
	// Write through pointers so *float64 leaves are updated in place.
	for slot.Kind() == reflect.Ptr && !slot.IsNil() && slot.Elem().Kind() != reflect.Struct {
		slot = slot.Elem()
	}
	if !slot.CanSet() || !nv.Type().AssignableTo(slot.Type()) {
		return false
	}
	slot.Set(nv)
	return true
}

// makeValue converts a number to a value of the given leaf type.
func makeValue(typ reflect.Type, value float64) (reflect.Value, bool) {
	if typ == nil {
		return reflect.Value{}, false
	}
	nv := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64:
		nv.SetFloat(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		nv.SetInt(int64(math.Round(value)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		nv.SetUint(uint64(math.Round(math.Max(value, 0))))
	case reflect.String:
		nv.SetString(formatNumber(value))
	default:
		return reflect.Value{}, false
	}
	return nv, true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// leafValue reads a numeric or numeric-string leaf. Booleans, nils, funcs
// and non-numeric strings are rejected.
func leafValue(v reflect.Value) (float64, leafKind, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return 0, leafNumber, false
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), leafNumber, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), leafNumber, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), leafNumber, true
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil || math.IsNaN(f) {
			return 0, leafNumericString, false
		}
		return f, leafNumericString, true
	}
	return 0, leafNumber, false
}

// parseEndpoint reads a goal leaf. Strings starting with '+' or '-' are relative.
func parseEndpoint(v reflect.Value) (endpoint, bool) {
	v = indirect(v)
	if !v.IsValid() {
		return endpoint{}, false
	}
	if v.Kind() == reflect.String {
		s := strings.TrimSpace(v.String())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return endpoint{}, false
		}
		relative := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")
		return endpoint{value: f, relative: relative}, true
	}
	f, _, ok := leafValue(v)
	return endpoint{value: f}, ok
}

type visitKey struct {
	ptr uintptr
	typ reflect.Type
}

// deepClone copies a value tree into plain maps, slices and scalars. Cycles
// are reported as ErrCyclicValue; shared but acyclic branches are copied twice.
func deepClone(v any) (any, error) {
	return cloneValue(reflect.ValueOf(v), map[visitKey]bool{}, nil)
}

func cloneValue(v reflect.Value, visiting map[visitKey]bool, p propPath) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil, nil
		}
		if ptr := v.Pointer(); ptr != 0 {
			key := visitKey{ptr: ptr, typ: v.Type()}
			if visiting[key] {
				return nil, cyclicError(p)
			}
			visiting[key] = true
			defer delete(visiting, key)
		}
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil, nil
		}
		return cloneValue(v.Elem(), visiting, p)
	case reflect.Map, reflect.Struct:
		if !isRecord(v) {
			return nil, nil
		}
		out := make(map[string]any)
		for _, s := range children(v) {
			cv, _ := child(v, s)
			c, err := cloneValue(cv, visiting, p.child(s))
			if err != nil {
				return nil, err
			}
			out[s.name] = c
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			c, err := cloneValue(v.Index(i), visiting, p.child(step{index: i, isIndex: true}))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	}

	if f, _, ok := leafValue(v); ok {
		return f, nil
	}
	return nil, nil
}

func cyclicError(p propPath) error {
	if len(p) == 0 {
		return ErrCyclicValue
	}
	return fmt.Errorf("%w at %s", ErrCyclicValue, p)
}
