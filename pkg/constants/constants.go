package constants

const (
	// RequestIDLength size of the id sent on a websocket RPC request.
	RequestIDLength = 16
	// CloseMessageCode identifies the message id for a close request.
	CloseMessageCode = 1000
	// DefaultWSTimeout is the timeout applied to a single RPC round trip.
	DefaultWSTimeout = 30
)

var (
	WebsocketScheme       = "ws"
	WebsocketSecureScheme = "wss"
	HTTPScheme            = "http"
	HTTPSecureScheme      = "https"
)
