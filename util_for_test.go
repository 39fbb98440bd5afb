package balcao_test

import (
	"context"
	"sync"

	balcao "github.com/balcao-erp/balcao.go"
)

// recordingNotifier captures everything a Resource fires at the user.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []balcao.Notification
}

func (n *recordingNotifier) Notify(notice balcao.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) all() []balcao.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]balcao.Notification(nil), n.notices...)
}

func (n *recordingNotifier) last() (balcao.Notification, bool) {
	all := n.all()
	if len(all) == 0 {
		return balcao.Notification{}, false
	}
	return all[len(all)-1], true
}

// recordingAudit captures emitted audit entries.
type recordingAudit struct {
	mu      sync.Mutex
	entries []balcao.AuditEntry
	err     error
}

func (a *recordingAudit) Record(_ context.Context, e balcao.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, e)
	return nil
}

func (a *recordingAudit) all() []balcao.AuditEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]balcao.AuditEntry(nil), a.entries...)
}

// spyStore records the requests a Resource issues and answers them with
// canned results.
type spyStore struct {
	mu         sync.Mutex
	lastQuery  balcao.Query
	lastFields balcao.Record

	selectRows  []balcao.Record
	selectTotal int64
	getRecord   balcao.Record
	err         error
}

func (s *spyStore) Select(_ context.Context, _ string, q balcao.Query) ([]balcao.Record, int64, error) {
	s.mu.Lock()
	s.lastQuery = q
	s.mu.Unlock()
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.selectRows, s.selectTotal, nil
}

func (s *spyStore) Get(context.Context, string, string) (balcao.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.getRecord, nil
}

func (s *spyStore) Insert(_ context.Context, _ string, fields balcao.Record) (balcao.Record, error) {
	s.mu.Lock()
	s.lastFields = fields
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := fields.Clone()
	out[balcao.FieldID] = "spy-1"
	return out, nil
}

func (s *spyStore) Update(_ context.Context, _ string, id string, fields balcao.Record) (balcao.Record, error) {
	s.mu.Lock()
	s.lastFields = fields
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := fields.Clone()
	out[balcao.FieldID] = id
	return out, nil
}

func (s *spyStore) Delete(context.Context, string, string) error {
	return s.err
}

func (s *spyStore) query() balcao.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

func (s *spyStore) fields() balcao.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFields
}

// blockingStore parks every call until release is closed, to exercise the
// in-flight status flags.
type blockingStore struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingStore) wait() {
	b.entered <- struct{}{}
	<-b.release
}

func (b *blockingStore) Select(context.Context, string, balcao.Query) ([]balcao.Record, int64, error) {
	b.wait()
	return []balcao.Record{}, 0, nil
}

func (b *blockingStore) Get(context.Context, string, string) (balcao.Record, error) {
	b.wait()
	return balcao.Record{}, nil
}

func (b *blockingStore) Insert(_ context.Context, _ string, fields balcao.Record) (balcao.Record, error) {
	b.wait()
	return fields, nil
}

func (b *blockingStore) Update(_ context.Context, _, _ string, fields balcao.Record) (balcao.Record, error) {
	b.wait()
	return fields, nil
}

func (b *blockingStore) Delete(context.Context, string, string) error {
	b.wait()
	return nil
}
