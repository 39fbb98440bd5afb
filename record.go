package balcao

import "fmt"

// Reserved field names assigned by the backing store.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldOwner     = "usuario_id"
)

// Record is one row of a collection, as an open-ended field bag. The layer
// is agnostic to every field except "id" and the store-assigned timestamps.
type Record map[string]any

// ID returns the record identifier, or "" when the record was never
// persisted.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// Field returns the string form of a field value, or "" for absent and nil
// fields.
func (r Record) Field(name string) string {
	v, ok := r[name]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Has reports whether the field is present, even if nil.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Clone returns a shallow copy. Nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
