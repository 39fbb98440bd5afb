package balcao

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/balcao-erp/balcao.go/internal/token"
)

// sqlstateUndefinedRelation is what PostgreSQL-compatible stores report for
// a table that was never created.
const sqlstateUndefinedRelation = "42P01"

// fallbackIDLength matches the length of ids the backing store assigns, so
// synthesized records are indistinguishable in screens.
const fallbackIDLength = 20

// IsMissingCollection reports whether the failure means the addressed
// collection does not exist yet: a provisioning gap, not an error the user
// can act on. The predicate is the single place that classifies this: a
// stable undefined-relation code, a "does not exist" message substring, or
// a not-found status all count. Everything else is a hard failure.
func IsMissingCollection(err error) bool {
	if err == nil {
		return false
	}

	var se *StoreError
	if errors.As(err, &se) {
		if se.Code == sqlstateUndefinedRelation || se.Status == http.StatusNotFound {
			return true
		}
	}

	return strings.Contains(strings.ToLower(err.Error()), "does not exist")
}

// synthesizeCreate builds the record a create would have returned, echoing
// the submitted fields under a freshly generated id. The result is not
// durable and exists only to keep screens functional against an
// incompletely provisioned backend.
func synthesizeCreate(fields Record) Record {
	rec := fields.Clone()
	if rec == nil {
		rec = Record{}
	}
	rec[FieldID] = token.New(fallbackIDLength)
	rec[FieldCreatedAt] = time.Now().UTC().Format(time.RFC3339)
	return rec
}

// synthesizeUpdate builds the record an update would have returned, merging
// the submitted fields over the known id.
func synthesizeUpdate(id string, fields Record) Record {
	rec := fields.Clone()
	if rec == nil {
		rec = Record{}
	}
	rec[FieldID] = id
	rec[FieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	return rec
}
