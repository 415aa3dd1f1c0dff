package dao

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON key that was absent from one set to null.
// Set is true whenever the key was present; Null is true when it was null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// DBValue is the value written to the column: nil for null.
func (o Optional[T]) DBValue() interface{} {
	if o.Null {
		return nil
	}
	return o.Value
}
