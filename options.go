package balcao

import (
	"sort"
	"strings"
)

// Defaults applied by [Resource.List] when the caller leaves QueryOptions
// fields zero.
const (
	DefaultPageSize = 100
	DefaultOrderBy  = FieldCreatedAt
)

// Direction orders a listing by the OrderBy field.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// QueryOptions parameterizes one call to [Resource.List]. The zero value
// asks for the first hundred rows, newest first.
//
// A string filter value containing the "%" wildcard selects a case
// insensitive "contains" matcher; any other value matches by equality. The
// wildcard pattern is passed through to the store verbatim. Filter entries
// whose value is nil or the empty string are dropped, so screens can bind
// form inputs directly without clearing them first.
type QueryOptions struct {
	Page           int
	PageSize       int
	OrderBy        string
	OrderDirection Direction
	Filters        map[string]any
}

func (o QueryOptions) withDefaults() QueryOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = DefaultPageSize
	}
	if o.OrderBy == "" {
		o.OrderBy = DefaultOrderBy
	}
	if o.OrderDirection != Ascending {
		o.OrderDirection = Descending
	}
	return o
}

// query lowers the options into the wire-level Query. Filter keys are
// sorted so that identical options always produce an identical query.
func (o QueryOptions) query() Query {
	o = o.withDefaults()

	from := (o.Page - 1) * o.PageSize
	q := Query{
		OrderBy:    o.OrderBy,
		Descending: o.OrderDirection == Descending,
		From:       from,
		To:         from + o.PageSize - 1,
	}

	keys := make([]string, 0, len(o.Filters))
	for k := range o.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := o.Filters[k]
		if v == nil || v == "" {
			continue
		}
		kind := MatchEquals
		if s, ok := v.(string); ok && strings.Contains(s, "%") {
			kind = MatchContains
		}
		q.Filters = append(q.Filters, FieldMatcher{Field: k, Kind: kind, Value: v})
	}

	return q
}

// PageResult is one bounded window of the filtered collection.
type PageResult struct {
	Rows []Record
	// TotalCount is the size of the full filtered collection, independent
	// of paging. It is -1 when the store could not report it.
	TotalCount int64
	// FromFallback marks a page synthesized because the collection is not
	// provisioned yet. Such pages are always empty.
	FromFallback bool
}
