// Package rpc holds the JSON-RPC message shapes spoken by the websocket
// transport.
package rpc

import "encoding/json"

// Request is an outgoing JSON-RPC request.
type Request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params,omitempty"`
}

// Error is a JSON-RPC error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Response is an incoming JSON-RPC response. Result stays raw until the
// caller knows what shape to decode into.
type Response struct {
	ID     string          `json:"id"`
	Error  *Error          `json:"error,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
}
