package services

import "encoding/json"

// Optional is a patch field that distinguishes an absent key from an explicit
// null. Set is true only when the key was present in the request body; Value
// is nil when the client sent null to clear the field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// UnmarshalJSON is only invoked for keys present in the body, so presence and
// null can be told apart where a plain pointer field cannot.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
