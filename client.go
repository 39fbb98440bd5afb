package balcao

import "github.com/rs/zerolog"

// Client is one session against a backing store. It carries the injected
// collaborators shared by every [Resource] it hands out.
type Client struct {
	store    Store
	audit    AuditSink
	notifier Notifier
	identity Identity
	log      zerolog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithAudit sets the audit sink. The default discards entries.
func WithAudit(sink AuditSink) Option {
	return func(c *Client) { c.audit = sink }
}

// WithNotifier sets the user-facing notification channel. The default
// discards notifications.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithIdentity sets the current-actor source. The default is [Anonymous].
func WithIdentity(id Identity) Option {
	return func(c *Client) { c.identity = id }
}

// WithLogger sets the logger used for audit-failure warnings and debug
// traces. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient returns a session over the given store.
func NewClient(store Store, opts ...Option) *Client {
	c := &Client{
		store:    store,
		audit:    NopAudit{},
		notifier: NopNotifier{},
		identity: Anonymous{},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resource returns the CRUD surface over one named collection. Screens
// hold one Resource per collection; Resources are cheap and stateless
// beyond their two status flags.
func (c *Client) Resource(collection string) *Resource {
	return &Resource{
		collection: collection,
		store:      c.store,
		audit:      c.audit,
		notifier:   c.notifier,
		identity:   c.identity,
		log:        c.log.With().Str("colecao", collection).Logger(),
	}
}
