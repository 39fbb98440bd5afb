package balcao

import "context"

// MatchKind selects how a filtered field is compared.
type MatchKind string

const (
	// MatchEquals keeps rows whose field equals the value exactly.
	MatchEquals MatchKind = "eq"
	// MatchContains keeps rows whose field matches a case insensitive
	// "%" wildcard pattern.
	MatchContains MatchKind = "ilike"
)

// FieldMatcher is one filter condition of a [Query].
type FieldMatcher struct {
	Field string    `json:"field"`
	Kind  MatchKind `json:"kind"`
	Value any       `json:"value"`
}

// Query is the wire-level read request handed to a [Store]: filters, an
// order and an inclusive row range. It is produced from [QueryOptions] and
// never built by callers directly.
type Query struct {
	Filters    []FieldMatcher `json:"filters,omitempty"`
	OrderBy    string         `json:"order_by"`
	Descending bool           `json:"descending"`
	From       int            `json:"from"`
	To         int            `json:"to"`
}

// Store is the backing-store collaborator: a remote set of named
// collections supporting filtered, ordered, range-limited reads and
// row-level writes.
//
// Select returns the rows of the range plus the total count of the full
// filtered collection, or -1 when the count is unknown. Get reports an
// absent row with [github.com/balcao-erp/balcao.go/pkg/constants.ErrNoRow].
// Failures carry a stable code, message or status classifiable by
// [IsMissingCollection]; transports surface them as [*StoreError].
type Store interface {
	Select(ctx context.Context, collection string, q Query) ([]Record, int64, error)
	Get(ctx context.Context, collection, id string) (Record, error)
	Insert(ctx context.Context, collection string, fields Record) (Record, error)
	Update(ctx context.Context, collection, id string, fields Record) (Record, error)
	Delete(ctx context.Context, collection, id string) error
}
