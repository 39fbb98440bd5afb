package balcao

import (
	"context"
	"time"
)

// Action is the kind of user action recorded in the audit trail. The
// values are the Portuguese wire values the backing store's logs collection
// has always used.
type Action string

const (
	ActionQuery  Action = "consulta"
	ActionView   Action = "visualizar"
	ActionInsert Action = "inserir"
	ActionUpdate Action = "atualizar"
	ActionDelete Action = "excluir"
)

// AuditEntry is one append-only audit trail row. Entries are written once
// and never read back by this layer.
type AuditEntry struct {
	ActorID    string
	Action     Action
	Collection string
	RecordID   string
	Detail     Record
	Timestamp  time.Time
}

// AuditSink records user actions. Recording is fire and forget: a failed
// Record is logged by the caller and never affects the primary operation,
// so observability cannot become a new failure mode.
type AuditSink interface {
	Record(ctx context.Context, e AuditEntry) error
}

// NopAudit discards every entry.
type NopAudit struct{}

func (NopAudit) Record(context.Context, AuditEntry) error { return nil }

// AuditCollection is the collection [CollectionAudit] appends to.
const AuditCollection = "logs"

// auditOrigin is stamped on every entry, mirroring what the web client
// writes into the ip column.
const auditOrigin = "cliente-go"

// CollectionAudit appends audit entries as rows of the store's audit
// collection.
type CollectionAudit struct {
	store      Store
	collection string
}

// NewCollectionAudit returns a sink writing into [AuditCollection] of the
// given store.
func NewCollectionAudit(store Store) *CollectionAudit {
	return &CollectionAudit{store: store, collection: AuditCollection}
}

func (a *CollectionAudit) Record(ctx context.Context, e AuditEntry) error {
	row := Record{
		"acao":   string(e.Action),
		"tabela": e.Collection,
		"ip":     auditOrigin,
	}
	if e.ActorID != "" {
		row[FieldOwner] = e.ActorID
	}
	if e.RecordID != "" {
		row["registro_id"] = e.RecordID
	}
	if e.Detail != nil {
		row["detalhes"] = e.Detail
	}

	_, err := a.store.Insert(ctx, a.collection, row)
	return err
}
