// Package rest implements [balcao.Store] over the backend's PostgREST-style
// HTTP interface: filters as "field=eq.value" / "field=ilike.%pattern%"
// query parameters, row ranges as Range headers, exact totals via
// "Prefer: count=exact" and the Content-Range response header. Errors come
// back as JSON bodies carrying the SQLSTATE code, which is how an
// unprovisioned collection (42P01) is recognized upstream.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	balcao "github.com/balcao-erp/balcao.go"
	"github.com/balcao-erp/balcao.go/pkg/constants"
)

type Store struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

type Option func(*Store)

// WithAPIKey sends the key as both the apikey header and a bearer token,
// the way the hosted backend expects it.
func WithAPIKey(key string) Option {
	return func(s *Store) { s.apiKey = key }
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *Store) { s.http = c }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func New(baseURL string, opts ...Option) (*Store, error) {
	if baseURL == "" {
		return nil, constants.ErrNoBaseURL
	}
	s := &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Store) Select(ctx context.Context, collection string, q balcao.Query) ([]balcao.Record, int64, error) {
	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Field, fmt.Sprintf("%s.%v", f.Kind, f.Value))
	}
	if q.OrderBy != "" {
		dir := "asc"
		if q.Descending {
			dir = "desc"
		}
		params.Set("order", q.OrderBy+"."+dir)
	}

	req, err := s.request(ctx, http.MethodGet, collection, params, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Range-Unit", "items")
	req.Header.Set("Range", fmt.Sprintf("%d-%d", q.From, q.To))
	req.Header.Set("Prefer", "count=exact")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, 0, s.asStoreError(resp)
	}

	var rows []balcao.Record
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, 0, err
	}

	return rows, totalFromContentRange(resp.Header.Get("Content-Range")), nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (balcao.Record, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set(balcao.FieldID, "eq."+id)
	params.Set("limit", "1")

	req, err := s.request(ctx, http.MethodGet, collection, params, nil)
	if err != nil {
		return nil, err
	}

	rows, err := s.doRows(req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, constants.ErrNoRow
	}
	return rows[0], nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields balcao.Record) (balcao.Record, error) {
	req, err := s.request(ctx, http.MethodPost, collection, nil, fields)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	rows, err := s.doRows(req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, constants.ErrNoRow
	}
	return rows[0], nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields balcao.Record) (balcao.Record, error) {
	params := url.Values{}
	params.Set(balcao.FieldID, "eq."+id)

	req, err := s.request(ctx, http.MethodPatch, collection, params, fields)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Prefer", "return=representation")

	rows, err := s.doRows(req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, constants.ErrNoRow
	}
	return rows[0], nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	params := url.Values{}
	params.Set(balcao.FieldID, "eq."+id)

	req, err := s.request(ctx, http.MethodDelete, collection, params, nil)
	if err != nil {
		return err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return s.asStoreError(resp)
	}
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for keep-alive
	return nil
}

func (s *Store) request(ctx context.Context, method, collection string, params url.Values, body balcao.Record) (*http.Request, error) {
	endpoint := s.baseURL + "/" + url.PathEscape(collection)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	return req, nil
}

func (s *Store) doRows(req *http.Request) ([]balcao.Record, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, s.asStoreError(resp)
	}

	var rows []balcao.Record
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// asStoreError lifts a non-2xx response into a classifiable error. The
// backend reports failures as {"code": ..., "message": ...} bodies.
func (s *Store) asStoreError(resp *http.Response) error {
	se := &balcao.StoreError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			se.Code = payload.Code
			se.Message = payload.Message
		} else {
			se.Message = strings.TrimSpace(string(body))
		}
	}
	if se.Message == "" {
		se.Message = resp.Status
	}

	s.log.Debug().Int("status", se.Status).Str("code", se.Code).Msg(se.Message)
	return se
}

// totalFromContentRange parses the "from-to/total" header; "*" or a
// missing header mean the count is unknown.
func totalFromContentRange(header string) int64 {
	_, total, ok := strings.Cut(header, "/")
	if !ok || total == "*" {
		return -1
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return -1
	}
	return n
}
