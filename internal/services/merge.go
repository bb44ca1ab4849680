package services

import (
	"reflect"

	json "github.com/goccy/go-json"
)

// mergeJSON shallow-merges the top-level keys of patch into dst, the way an
// object spread would: a key present in patch replaces the whole value.
// Keys in keep are restored after the merge. dst must be a pointer.
func mergeJSON(dst interface{}, patch []byte, keep ...string) error {
	var changes map[string]json.RawMessage
	if err := json.Unmarshal(patch, &changes); err != nil {
		return invalid("invalid JSON body")
	}

	current, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(current, &merged); err != nil {
		return err
	}

	kept := make(map[string]json.RawMessage, len(keep))
	for _, k := range keep {
		if v, ok := merged[k]; ok {
			kept[k] = v
		}
	}
	for k, v := range changes {
		merged[k] = v
	}
	for k, v := range kept {
		merged[k] = v
	}

	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	target := reflect.ValueOf(dst).Elem()
	target.Set(reflect.Zero(target.Type()))
	if err := json.Unmarshal(out, dst); err != nil {
		return invalid("invalid field value: %s", err)
	}
	return nil
}
