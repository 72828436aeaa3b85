package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// taggedField is a settable struct field carrying a given tag.
type taggedField struct {
	name  string // tag value without options
	value reflect.Value
	field reflect.StructField
}

// tagged lists the fields of *v tagged with tag. Fields tagged "-" or with an
// empty name are left out.
func tagged(v any, tag string, bindErr error) ([]taggedField, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	out := make([]taggedField, 0, rt.NumField())
	for i := range rt.NumField() {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}
		out = append(out, taggedField{name: name, value: rv.Field(i), field: sf})
	}
	return out, nil
}

// bindValues assigns values[f.name] to each field tagged with tag.
func bindValues(v any, tag string, values map[string][]string, split bool, bindErr error) error {
	fields, err := tagged(v, tag, bindErr)
	if err != nil {
		return err
	}
	for _, f := range fields {
		raw := values[f.name]
		if len(raw) == 0 {
			continue
		}
		if err := assign(f.value, raw, split); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, f.field.Name, err)
		}
	}
	return nil
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

// assign stores raw into dst. Scalars take the first value; slices take every
// value, with comma-separated entries split apart when split is set.
func assign(dst reflect.Value, raw []string, split bool) error {
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(dst.Elem(), raw, split)
	}

	if dst.CanAddr() && dst.Addr().Type().Implements(textUnmarshalerType) {
		return dst.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw[0]))
	}

	if dst.Kind() == reflect.Slice {
		items := raw
		if split {
			items = nil
			for _, r := range raw {
				for item := range strings.SplitSeq(r, ",") {
					items = append(items, strings.TrimSpace(item))
				}
			}
		}
		s := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(s.Index(i), []string{item}, false); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil
	}

	return parseScalar(dst, raw[0])
}

func parseScalar(dst reflect.Value, s string) error {
	t := dst.Type()
	switch t.Kind() {
	case reflect.String:
		dst.SetString(s)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		dst.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", s)
		}
		dst.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		dst.SetFloat(n)
	default:
		return fmt.Errorf("unsupported type %s", t)
	}
	return nil
}

// parseBool also accepts the values browsers send for checkboxes.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "on", "yes":
		return true, nil
	case "", "0", "f", "false", "off", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// mediaTypeOf strips parameters such as charset or boundary.
func mediaTypeOf(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}
