package wsrpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/internal/rpc"
	"github.com/balcao-erp/balcao.go/pkg/constants"
)

// handler answers one decoded request; returning ok=false suppresses the
// response entirely, to simulate a server that never answers.
type handler func(req rpc.Request) (rpc.Response, bool)

func newServer(t *testing.T, handle handler) *Store {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req rpc.Request
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			res, ok := handle(req)
			if !ok {
				continue
			}
			res.ID = req.ID
			if err := conn.WriteJSON(res); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	store, err := Dial("ws"+strings.TrimPrefix(srv.URL, "http"), WithTimeout(2*time.Second))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func result(t *testing.T, v any) rpc.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return rpc.Response{Result: raw}
}

func TestSelect(t *testing.T) {
	reqs := make(chan rpc.Request, 1)
	store := newServer(t, func(req rpc.Request) (rpc.Response, bool) {
		reqs <- req
		return result(t, map[string]any{
			"rows":  []balcao.Record{{"id": "p-1", "nome": "Caneta"}},
			"total": 42,
		}), true
	})

	rows, total, err := store.Select(context.Background(), "produtos", balcao.Query{
		OrderBy:    "created_at",
		Descending: true,
		From:       0,
		To:         9,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Caneta", rows[0]["nome"])
	assert.EqualValues(t, 42, total)

	got := <-reqs
	assert.Equal(t, "select", got.Method)
	require.Len(t, got.Params, 2)
	assert.Equal(t, "produtos", got.Params[0])
	assert.Len(t, got.ID, constants.RequestIDLength)
}

func TestSelectOmittedTotal(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return result(t, map[string]any{"rows": []balcao.Record{}}), true
	})

	_, total, err := store.Select(context.Background(), "produtos", balcao.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, -1, total)
}

func TestGetNullIsNoRow(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return rpc.Response{Result: json.RawMessage("null")}, true
	})

	_, err := store.Get(context.Background(), "produtos", "p-1")
	assert.True(t, errors.Is(err, constants.ErrNoRow))
}

func TestInsert(t *testing.T) {
	store := newServer(t, func(req rpc.Request) (rpc.Response, bool) {
		fields, _ := req.Params[1].(map[string]any)
		fields["id"] = "p-9"
		return result(t, fields), true
	})

	rec, err := store.Insert(context.Background(), "produtos", balcao.Record{"nome": "Teste"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", rec.ID())
	assert.Equal(t, "Teste", rec["nome"])
}

func TestServerError(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return rpc.Response{Error: &rpc.Error{
			Code:    -32000,
			Message: `relation "public.grupos" does not exist`,
		}}, true
	})

	_, _, err := store.Select(context.Background(), "grupos", balcao.Query{})
	require.Error(t, err)
	assert.True(t, balcao.IsMissingCollection(err))
}

func TestTimeout(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return rpc.Response{}, false
	})
	store.timeout = 50 * time.Millisecond

	_, _, err := store.Select(context.Background(), "produtos", balcao.Query{})
	assert.True(t, errors.Is(err, constants.ErrTimeout))
}

func TestContextCancel(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return rpc.Response{}, false
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, _, err := store.Select(ctx, "produtos", balcao.Query{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClosedConnection(t *testing.T) {
	store := newServer(t, func(rpc.Request) (rpc.Response, bool) {
		return rpc.Response{}, false
	})

	errc := make(chan error, 1)
	go func() {
		_, _, err := store.Select(context.Background(), "produtos", balcao.Query{})
		errc <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, store.Close())

	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, constants.ErrClosed))
	case <-time.After(time.Second):
		t.Fatal("pending call did not settle after Close")
	}
}

func TestConcurrentCalls(t *testing.T) {
	store := newServer(t, func(req rpc.Request) (rpc.Response, bool) {
		id, _ := req.Params[1].(string)
		return result(t, balcao.Record{"id": id}), true
	})

	const n = 16
	errc := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			id := string(rune('a' + i))
			rec, err := store.Get(context.Background(), "produtos", id)
			if err == nil && rec.ID() != id {
				err = errors.New("response routed to the wrong request")
			}
			errc <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errc)
	}
}
