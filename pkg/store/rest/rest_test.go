package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/pkg/constants"
)

type captured struct {
	method string
	path   string
	query  url.Values
	header http.Header
	body   []byte
}

// newServer answers every request with the given handler and records what it
// received.
func newServer(t *testing.T, status int, respHeader http.Header, respBody string) (*Store, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.header = r.Header.Clone()
		got.body, _ = io.ReadAll(r.Body)

		for k, vs := range respHeader {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(status)
		w.Write([]byte(respBody)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	store, err := New(srv.URL, WithAPIKey("chave-teste"))
	require.NoError(t, err)
	return store, got
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("")
	assert.True(t, errors.Is(err, constants.ErrNoBaseURL))
}

func TestSelectRequestShape(t *testing.T) {
	store, got := newServer(t, http.StatusOK,
		http.Header{"Content-Range": []string{"0-9/42"}}, `[{"id":"p-1","nome":"Caneta"}]`)

	rows, total, err := store.Select(context.Background(), "produtos", balcao.Query{
		Filters: []balcao.FieldMatcher{
			{Field: "nome", Kind: balcao.MatchContains, Value: "%can%"},
			{Field: "grupo_id", Kind: balcao.MatchEquals, Value: "g-1"},
		},
		OrderBy:    "created_at",
		Descending: true,
		From:       0,
		To:         9,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/produtos", got.path)
	assert.Equal(t, "*", got.query.Get("select"))
	assert.Equal(t, "ilike.%can%", got.query.Get("nome"))
	assert.Equal(t, "eq.g-1", got.query.Get("grupo_id"))
	assert.Equal(t, "created_at.desc", got.query.Get("order"))
	assert.Equal(t, "items", got.header.Get("Range-Unit"))
	assert.Equal(t, "0-9", got.header.Get("Range"))
	assert.Equal(t, "count=exact", got.header.Get("Prefer"))
	assert.Equal(t, "chave-teste", got.header.Get("Apikey"))
	assert.Equal(t, "Bearer chave-teste", got.header.Get("Authorization"))

	require.Len(t, rows, 1)
	assert.Equal(t, "Caneta", rows[0]["nome"])
	assert.EqualValues(t, 42, total)
}

func TestSelectUnknownTotal(t *testing.T) {
	store, _ := newServer(t, http.StatusOK,
		http.Header{"Content-Range": []string{"0-9/*"}}, `[]`)

	_, total, err := store.Select(context.Background(), "produtos", balcao.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, -1, total)
}

func TestSelectUndefinedRelation(t *testing.T) {
	store, _ := newServer(t, http.StatusNotFound, nil,
		`{"code":"42P01","message":"relation \"public.grupos\" does not exist"}`)

	_, _, err := store.Select(context.Background(), "grupos", balcao.Query{})
	require.Error(t, err)
	assert.True(t, balcao.IsMissingCollection(err))

	var serr *balcao.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "42P01", serr.Code)
	assert.Equal(t, http.StatusNotFound, serr.Status)
}

func TestSelectNonJSONErrorBody(t *testing.T) {
	store, _ := newServer(t, http.StatusBadGateway, nil, "upstream unavailable")

	_, _, err := store.Select(context.Background(), "produtos", balcao.Query{})
	require.Error(t, err)

	var serr *balcao.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "upstream unavailable", serr.Message)
	assert.Empty(t, serr.Code)
}

func TestGet(t *testing.T) {
	store, got := newServer(t, http.StatusOK, nil, `[{"id":"p-1","nome":"Caneta"}]`)

	rec, err := store.Get(context.Background(), "produtos", "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Caneta", rec["nome"])
	assert.Equal(t, "eq.p-1", got.query.Get("id"))
	assert.Equal(t, "1", got.query.Get("limit"))
}

func TestGetAbsent(t *testing.T) {
	store, _ := newServer(t, http.StatusOK, nil, `[]`)

	_, err := store.Get(context.Background(), "produtos", "p-1")
	assert.True(t, errors.Is(err, constants.ErrNoRow))
}

func TestInsert(t *testing.T) {
	store, got := newServer(t, http.StatusCreated, nil, `[{"id":"p-9","nome":"Teste"}]`)

	rec, err := store.Insert(context.Background(), "produtos", balcao.Record{"nome": "Teste"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", rec.ID())

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "return=representation", got.header.Get("Prefer"))
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Equal(t, "Teste", sent["nome"])
}

func TestUpdate(t *testing.T) {
	store, got := newServer(t, http.StatusOK, nil, `[{"id":"p-1","nome":"Novo"}]`)

	rec, err := store.Update(context.Background(), "produtos", "p-1", balcao.Record{"nome": "Novo"})
	require.NoError(t, err)
	assert.Equal(t, "Novo", rec["nome"])

	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "eq.p-1", got.query.Get("id"))
}

func TestDelete(t *testing.T) {
	store, got := newServer(t, http.StatusNoContent, nil, "")

	err := store.Delete(context.Background(), "produtos", "p-1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "eq.p-1", got.query.Get("id"))
}

func TestTotalFromContentRange(t *testing.T) {
	cases := []struct {
		header string
		want   int64
	}{
		{"0-9/42", 42},
		{"*/0", 0},
		{"0-9/*", -1},
		{"", -1},
		{"garbage", -1},
		{"0-9/abc", -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, totalFromContentRange(tc.header), tc.header)
	}
}
