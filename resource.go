package balcao

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/balcao-erp/balcao.go/pkg/constants"
)

// Resource is the uniform CRUD surface over one named collection. Every
// call is independent; the only state a Resource keeps are the two flags
// screens bind to, [Resource.IsLoading] and [Resource.LastError].
//
// Concurrent calls on one Resource are allowed but not coordinated:
// IsLoading stays true until every pending call has settled, and LastError
// reflects whichever hard failure resolved last. That race is accepted, not
// a guarantee.
type Resource struct {
	collection string
	store      Store
	audit      AuditSink
	notifier   Notifier
	identity   Identity
	log        zerolog.Logger

	mu      sync.Mutex
	pending int
	lastErr string
}

// Mutation is the outcome of a successful create or update. FromFallback
// marks a record synthesized client-side because the collection is not
// provisioned; such records are not durable.
type Mutation struct {
	Record       Record
	FromFallback bool
}

// Collection returns the name of the collection this Resource addresses.
func (r *Resource) Collection() string { return r.collection }

// IsLoading reports whether at least one call on this Resource is still in
// flight.
func (r *Resource) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending > 0
}

// LastError returns the message of the most recent hard failure, or "".
// It is cleared when the next call starts.
func (r *Resource) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Resource) begin() {
	r.mu.Lock()
	r.pending++
	r.lastErr = ""
	r.mu.Unlock()
}

func (r *Resource) end() {
	r.mu.Lock()
	r.pending--
	r.mu.Unlock()
}

// fail records a hard failure and surfaces it to the user, once.
func (r *Resource) fail(title string, err error) {
	r.mu.Lock()
	r.lastErr = err.Error()
	r.mu.Unlock()

	r.log.Error().Err(err).Msg(title)
	r.notifier.Notify(Notification{
		Title:       title,
		Description: err.Error(),
		Severity:    SeverityError,
	})
}

// emit appends an audit entry. Audit failures are logged and swallowed;
// they never affect the operation that triggered them.
func (r *Resource) emit(ctx context.Context, action Action, recordID string, detail Record) {
	e := AuditEntry{
		Action:     action,
		Collection: r.collection,
		RecordID:   recordID,
		Detail:     detail,
	}
	if actor, ok := r.identity.ActorID(); ok {
		e.ActorID = actor
	}
	if err := r.audit.Record(ctx, e); err != nil {
		r.log.Warn().Err(err).Str("acao", string(action)).Msg("falha ao registrar auditoria")
	}
}

// List fetches one page of the collection. A nil opts asks for the
// defaults of [QueryOptions].
//
// When the collection is not provisioned yet the returned page is empty and
// flagged FromFallback, with no error and no notification: screens must not
// need to special-case deployment gaps. Any other failure is notified,
// recorded in LastError, and returned alongside an empty page.
func (r *Resource) List(ctx context.Context, opts *QueryOptions) (*PageResult, error) {
	r.begin()
	defer r.end()

	var o QueryOptions
	if opts != nil {
		o = *opts
	}

	rows, total, err := r.store.Select(ctx, r.collection, o.query())
	if err != nil {
		if IsMissingCollection(err) {
			r.log.Debug().Err(err).Msg("colecao nao provisionada, retornando pagina vazia")
			return &PageResult{Rows: []Record{}, FromFallback: true}, nil
		}
		r.fail("Erro ao buscar dados", err)
		return &PageResult{Rows: []Record{}}, err
	}

	r.emit(ctx, ActionQuery, "", nil)

	if rows == nil {
		rows = []Record{}
	}
	return &PageResult{Rows: rows, TotalCount: total}, nil
}

// GetByID fetches a single record. Absence, including an unprovisioned
// collection, is a normal silent outcome: both record and error are nil.
func (r *Resource) GetByID(ctx context.Context, id string) (Record, error) {
	r.begin()
	defer r.end()

	rec, err := r.store.Get(ctx, r.collection, id)
	if err != nil {
		if errors.Is(err, constants.ErrNoRow) || IsMissingCollection(err) {
			return nil, nil
		}
		r.fail("Erro ao buscar registro", err)
		return nil, err
	}

	r.emit(ctx, ActionView, id, nil)
	return rec, nil
}

// Create persists a new record. On the user-owned collections the current
// actor is stamped into usuario_id unless the caller set one; every other
// field passes through verbatim.
func (r *Resource) Create(ctx context.Context, fields Record) (*Mutation, error) {
	r.begin()
	defer r.end()

	fields = r.withAuthorship(fields)

	rec, err := r.store.Insert(ctx, r.collection, fields)
	if err != nil {
		if IsMissingCollection(err) {
			m := &Mutation{Record: synthesizeCreate(fields), FromFallback: true}
			r.log.Debug().Msg("colecao nao provisionada, registro sintetizado")
			r.notifier.Notify(Notification{
				Title:       "Registro criado com sucesso",
				Description: "O registro foi mantido localmente.",
				Severity:    SeveritySuccess,
			})
			return m, nil
		}
		r.fail("Erro ao criar registro", err)
		return nil, err
	}

	r.emit(ctx, ActionInsert, rec.ID(), fields)
	r.notifier.Notify(Notification{
		Title:       "Registro criado com sucesso",
		Description: "O registro foi adicionado ao sistema.",
		Severity:    SeveritySuccess,
	})
	return &Mutation{Record: rec}, nil
}

// Update applies a partial record to an existing row. A row that no longer
// exists is reported as absent (nil, nil), silently.
func (r *Resource) Update(ctx context.Context, id string, fields Record) (*Mutation, error) {
	r.begin()
	defer r.end()

	rec, err := r.store.Update(ctx, r.collection, id, fields)
	if err != nil {
		if IsMissingCollection(err) {
			m := &Mutation{Record: synthesizeUpdate(id, fields), FromFallback: true}
			r.log.Debug().Msg("colecao nao provisionada, registro sintetizado")
			r.notifier.Notify(Notification{
				Title:       "Registro atualizado com sucesso",
				Description: "As alterações foram mantidas localmente.",
				Severity:    SeveritySuccess,
			})
			return m, nil
		}
		if errors.Is(err, constants.ErrNoRow) {
			return nil, nil
		}
		r.fail("Erro ao atualizar registro", err)
		return nil, err
	}

	r.emit(ctx, ActionUpdate, id, fields)
	r.notifier.Notify(Notification{
		Title:       "Registro atualizado com sucesso",
		Description: "As alterações foram salvas.",
		Severity:    SeveritySuccess,
	})
	return &Mutation{Record: rec}, nil
}

// Remove deletes a record. An unprovisioned collection reports success
// without any backing effect.
func (r *Resource) Remove(ctx context.Context, id string) (bool, error) {
	r.begin()
	defer r.end()

	if err := r.store.Delete(ctx, r.collection, id); err != nil {
		if IsMissingCollection(err) {
			r.notifier.Notify(Notification{
				Title:       "Registro excluído com sucesso",
				Description: "O item foi removido localmente.",
				Severity:    SeveritySuccess,
			})
			return true, nil
		}
		r.fail("Erro ao excluir registro", err)
		return false, err
	}

	r.emit(ctx, ActionDelete, id, nil)
	r.notifier.Notify(Notification{
		Title:       "Registro excluído com sucesso",
		Description: "O item foi removido do sistema.",
		Severity:    SeveritySuccess,
	})
	return true, nil
}

func (r *Resource) withAuthorship(fields Record) Record {
	if !userOwnedCollections[r.collection] {
		return fields
	}
	actor, ok := r.identity.ActorID()
	if !ok || fields.Has(FieldOwner) {
		return fields
	}
	out := fields.Clone()
	if out == nil {
		out = Record{}
	}
	out[FieldOwner] = actor
	return out
}
