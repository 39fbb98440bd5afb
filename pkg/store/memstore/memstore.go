// Package memstore is an embedded, thread-safe implementation of
// [balcao.Store]. It backs the test suites and the CLI demo mode, and it
// reproduces the wire behaviour of the real backend closely enough that the
// degraded-mode paths can be exercised without a server: addressing a
// collection that was never provisioned fails with the same undefined
// relation code the real store reports.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/pkg/constants"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string][]balcao.Record
}

func New() *Store {
	return &Store{collections: make(map[string][]balcao.Record)}
}

// Provision creates an empty collection. Collections are also created
// implicitly by Seed.
func (s *Store) Provision(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = []balcao.Record{}
	}
}

// Seed appends rows to a collection, creating it if needed. Rows without an
// id or created_at get them assigned, like an insert would.
func (s *Store) Seed(collection string, rows ...balcao.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.collections[collection] = append(s.collections[collection], s.stamp(row))
	}
	if _, ok := s.collections[collection]; !ok {
		s.collections[collection] = []balcao.Record{}
	}
}

func (s *Store) stamp(fields balcao.Record) balcao.Record {
	row := fields.Clone()
	if row == nil {
		row = balcao.Record{}
	}
	if row.ID() == "" {
		row[balcao.FieldID] = uuid.NewString()
	}
	if !row.Has(balcao.FieldCreatedAt) {
		row[balcao.FieldCreatedAt] = time.Now().UTC().Format(time.RFC3339)
	}
	return row
}

// missing mirrors the backend's undefined-relation failure so that
// [balcao.IsMissingCollection] classifies it the same way.
func missing(collection string) error {
	return &balcao.StoreError{
		Code:    "42P01",
		Message: fmt.Sprintf("relation %q does not exist", "public."+collection),
		Status:  404,
	}
}

func (s *Store) rows(collection string) ([]balcao.Record, error) {
	rows, ok := s.collections[collection]
	if !ok {
		return nil, missing(collection)
	}
	return rows, nil
}

func (s *Store) Select(ctx context.Context, collection string, q balcao.Query) ([]balcao.Record, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.rows(collection)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]balcao.Record, 0, len(rows))
	for _, row := range rows {
		if matchesAll(row, q.Filters) {
			matched = append(matched, row)
		}
	}

	if q.OrderBy != "" {
		orderBy(matched, q.OrderBy, q.Descending)
	}

	total := int64(len(matched))

	from, to := q.From, q.To
	if from < 0 {
		from = 0
	}
	if from > len(matched) {
		from = len(matched)
	}
	if to < 0 || to >= len(matched) {
		to = len(matched) - 1
	}

	page := make([]balcao.Record, 0)
	for i := from; i <= to && i < len(matched); i++ {
		page = append(page, matched[i].Clone())
	}

	return page, total, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (balcao.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.rows(collection)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.ID() == id {
			return row.Clone(), nil
		}
	}
	return nil, constants.ErrNoRow
}

func (s *Store) Insert(ctx context.Context, collection string, fields balcao.Record) (balcao.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection]; !ok {
		return nil, missing(collection)
	}

	row := s.stamp(fields)
	s.collections[collection] = append(s.collections[collection], row)
	return row.Clone(), nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields balcao.Record) (balcao.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows(collection)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if row.ID() != id {
			continue
		}
		merged := row.Clone()
		for k, v := range fields {
			merged[k] = v
		}
		merged[balcao.FieldID] = id
		merged[balcao.FieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
		s.collections[collection][i] = merged
		return merged.Clone(), nil
	}
	return nil, constants.ErrNoRow
}

// Delete removes a row. Deleting an id that is already gone succeeds, like
// the real backend.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.rows(collection)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row.ID() == id {
			s.collections[collection] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchesAll(row balcao.Record, filters []balcao.FieldMatcher) bool {
	for _, f := range filters {
		if !matches(row, f) {
			return false
		}
	}
	return true
}

func matches(row balcao.Record, f balcao.FieldMatcher) bool {
	v, ok := row[f.Field]
	if !ok || v == nil {
		return false
	}
	switch f.Kind {
	case balcao.MatchContains:
		pattern, _ := f.Value.(string)
		// "%" only ever appears as a leading/trailing anchor in practice,
		// so a substring test over the stripped pattern is enough here.
		needle := strings.ToLower(strings.ReplaceAll(pattern, "%", ""))
		return strings.Contains(strings.ToLower(fmt.Sprint(v)), needle)
	default:
		return fmt.Sprint(v) == fmt.Sprint(f.Value)
	}
}

func orderBy(rows []balcao.Record, field string, descending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		less := compare(rows[i][field], rows[j][field]) < 0
		if descending {
			return compare(rows[i][field], rows[j][field]) > 0
		}
		return less
	})
}

// compare orders two field values: numerically when both parse as numbers,
// lexically otherwise. Nil sorts first.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	af, aerr := strconv.ParseFloat(as, 64)
	bf, berr := strconv.ParseFloat(bs, 64)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(as, bs)
}
