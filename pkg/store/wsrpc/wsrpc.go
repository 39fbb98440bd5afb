// Package wsrpc implements [balcao.Store] over a JSON-RPC websocket
// connection. One goroutine reads responses off the socket and routes them
// to the in-flight request they answer, correlated by a random request id;
// writers never touch the socket concurrently.
package wsrpc

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/internal/rpc"
	"github.com/balcao-erp/balcao.go/internal/token"
	"github.com/balcao-erp/balcao.go/pkg/constants"
)

type Store struct {
	conn    *websocket.Conn
	timeout time.Duration
	log     zerolog.Logger

	writeLock sync.Mutex

	respLock sync.RWMutex
	resp     map[string]chan rpc.Response

	done      chan struct{}
	closeOnce sync.Once
}

type Option func(*Store)

// WithTimeout bounds one RPC round trip. The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Dial connects to the backend's websocket RPC endpoint and starts the
// reader loop.
func Dial(url string, opts ...Option) (*Store, error) {
	dialer := websocket.DefaultDialer
	dialer.EnableCompression = true

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{
		conn:    conn,
		timeout: constants.DefaultWSTimeout * time.Second,
		log:     zerolog.Nop(),
		resp:    make(map[string]chan rpc.Response),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.read()
	return s, nil
}

// Close sends the websocket close handshake and stops the reader loop.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(constants.CloseMessageCode, "")

		s.writeLock.Lock()
		err = s.conn.WriteMessage(websocket.CloseMessage, msg)
		s.writeLock.Unlock()

		s.conn.Close()
	})
	return err
}

func (s *Store) read() {
	defer close(s.done)
	for {
		var res rpc.Response
		if err := s.conn.ReadJSON(&res); err != nil {
			s.log.Debug().Err(err).Msg("leitura encerrada")
			return
		}
		s.route(res)
	}
}

func (s *Store) route(res rpc.Response) {
	s.respLock.RLock()
	ch, ok := s.resp[res.ID]
	s.respLock.RUnlock()

	if !ok {
		s.log.Warn().Str("id", res.ID).Msg("resposta sem requisicao pendente")
		return
	}
	ch <- res
}

func (s *Store) register(id string) chan rpc.Response {
	ch := make(chan rpc.Response, 1)
	s.respLock.Lock()
	s.resp[id] = ch
	s.respLock.Unlock()
	return ch
}

func (s *Store) unregister(id string) {
	s.respLock.Lock()
	delete(s.resp, id)
	s.respLock.Unlock()
}

func (s *Store) send(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	id := token.New(constants.RequestIDLength)
	ch := s.register(id)
	defer s.unregister(id)

	req := rpc.Request{ID: id, Method: method, Params: params}

	s.writeLock.Lock()
	err := s.conn.WriteJSON(req)
	s.writeLock.Unlock()
	if err != nil {
		return nil, err
	}

	timeout := time.NewTimer(s.timeout)
	defer timeout.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timeout.C:
		return nil, constants.ErrTimeout
	case <-s.done:
		return nil, constants.ErrClosed
	case res := <-ch:
		if res.Error != nil {
			return nil, &balcao.StoreError{Message: res.Error.Message}
		}
		return res.Result, nil
	}
}

// selectResult is the wire shape of a select response.
type selectResult struct {
	Rows  []balcao.Record `json:"rows"`
	Total *int64          `json:"total"`
}

func (s *Store) Select(ctx context.Context, collection string, q balcao.Query) ([]balcao.Record, int64, error) {
	raw, err := s.send(ctx, "select", collection, q)
	if err != nil {
		return nil, 0, err
	}

	var res selectResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, 0, err
	}

	total := int64(-1)
	if res.Total != nil {
		total = *res.Total
	}
	return res.Rows, total, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (balcao.Record, error) {
	raw, err := s.send(ctx, "get", collection, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (s *Store) Insert(ctx context.Context, collection string, fields balcao.Record) (balcao.Record, error) {
	raw, err := s.send(ctx, "insert", collection, fields)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields balcao.Record) (balcao.Record, error) {
	raw, err := s.send(ctx, "update", collection, id, fields)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	_, err := s.send(ctx, "delete", collection, id)
	return err
}

// decodeRecord treats a null result as "no row", which is how the backend
// answers a lookup that matched nothing.
func decodeRecord(raw json.RawMessage) (balcao.Record, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, constants.ErrNoRow
	}
	var rec balcao.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
