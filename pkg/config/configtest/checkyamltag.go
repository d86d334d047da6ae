package configtest

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"go.uber.org/multierr"
)

var durationType = reflect.TypeOf(time.Duration(0))

func checkYAMLTags(t reflect.Type, seen map[reflect.Type]struct{}) error {
	if _, ok := seen[t]; ok {
		return nil
	}
	seen[t] = struct{}{}

	switch t.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.Pointer:
		return checkYAMLTags(t.Elem(), seen)
	case reflect.Struct:
		var errs error
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)

			if !field.IsExported() {
				// ignore unexported fields
				continue
			}

			if field.Type.Kind() == reflect.Bool {
				// ignore boolean fields
				continue
			}

			if field.Tag.Get("config") == "allowempty" {
				// ignore configured exceptions
				continue
			}

			parts := strings.Split(field.Tag.Get("yaml"), ",")
			if parts[0] == "-" {
				// ignore unparsed fields
				continue
			}

			if !slices.Contains(parts, "omitempty") && !slices.Contains(parts, "inline") {
				errs = multierr.Append(errs, fmt.Errorf("%s/%s.%s missing omitempty tag", t.PkgPath(), t.Name(), field.Name))
			}

			if field.Type == durationType {
				continue
			}
			errs = multierr.Append(errs, checkYAMLTags(field.Type, seen))
		}
		return errs
	default:
		return nil
	}
}

// CheckYAMLTags reports every non-boolean field reachable from config that
// would be written out when zero.
func CheckYAMLTags(config any, exclude ...any) error {
	seen := map[reflect.Type]struct{}{}
	for _, e := range exclude {
		seen[reflect.TypeOf(e)] = struct{}{}
	}
	return checkYAMLTags(reflect.TypeOf(config), seen)
}
