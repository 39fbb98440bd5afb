// The [balcao] package implements the record-access layer of the balcao
// inventory client in the Go way.
//
// # Resources
//
// A [Resource] is a uniform CRUD surface over one named collection of the
// backing store: [Resource.List], [Resource.GetByID], [Resource.Create],
// [Resource.Update] and [Resource.Remove] share one pagination, filtering and
// ordering contract regardless of the shape of the records inside the
// collection. Resources are obtained from a [Client], one per collection:
//
//	cli := balcao.NewClient(store)
//	produtos := cli.Resource(balcao.CollectionProdutos)
//	page, err := produtos.List(ctx, nil)
//
// # Backing stores
//
// The remote store is abstracted behind [Store]. Three implementations ship
// with the module: a PostgREST-style HTTP transport
// ([github.com/balcao-erp/balcao.go/pkg/store/rest]), a JSON-RPC websocket
// transport ([github.com/balcao-erp/balcao.go/pkg/store/wsrpc]) and an
// embedded in-memory store used by tests and the demo mode
// ([github.com/balcao-erp/balcao.go/pkg/store/memstore]).
//
// # Degraded mode
//
// A deployment may not have every collection provisioned yet. When the store
// reports that a collection does not exist (see [IsMissingCollection]), reads
// degrade to empty pages and writes return synthesized, non-durable records
// flagged with FromFallback, so screens keep working against an incomplete
// backend. Every other failure is surfaced once through the configured
// [Notifier] and recorded in [Resource.LastError].
//
// # Side channels
//
// Successful operations emit audit entries through an [AuditSink]; audit
// failures are logged and never affect the primary operation. Notifications
// and the current actor identity are injected collaborators as well, so
// tests can substitute recording doubles.
package balcao
