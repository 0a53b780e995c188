package output

import (
	"fmt"
	"reflect"
	"sort"
)

// SortByTwoFields stably sorts slice — a pointer to a slice of structs —
// first by primary, then by secondary, comparing both fields as
// strings. It is built for exactly the shape usage.BuildReport needs: a
// report row sorted by (File, Name), not an arbitrary number of
// criteria or field types.
func SortByTwoFields(slice interface{}, primary, secondary string) error {
	sliceVal := reflect.ValueOf(slice)
	if sliceVal.Kind() != reflect.Ptr || sliceVal.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("slice must be a pointer to a slice")
	}
	sliceVal = sliceVal.Elem()

	elemType := sliceVal.Type().Elem()
	if elemType.Kind() != reflect.Struct {
		return fmt.Errorf("slice elements must be structs")
	}
	for _, name := range []string{primary, secondary} {
		if f, ok := elemType.FieldByName(name); !ok || f.Type.Kind() != reflect.String {
			return fmt.Errorf("field %q is not a comparable string field", name)
		}
	}

	var sortErr error
	sort.SliceStable(sliceVal.Interface(), func(i, j int) bool {
		ip, jp, err := stringFields(sliceVal.Index(i), sliceVal.Index(j), primary)
		if err != nil {
			sortErr = err
			return false
		}
		if ip != jp {
			return ip < jp
		}
		is, js, err := stringFields(sliceVal.Index(i), sliceVal.Index(j), secondary)
		if err != nil {
			sortErr = err
			return false
		}
		return is < js
	})
	return sortErr
}

func stringFields(a, b reflect.Value, name string) (string, string, error) {
	af := a.FieldByName(name)
	bf := b.FieldByName(name)
	if !af.IsValid() || !bf.IsValid() || af.Kind() != reflect.String {
		return "", "", fmt.Errorf("field %q is not a comparable string field", name)
	}
	return af.String(), bf.String(), nil
}
