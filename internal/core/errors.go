package core

import "errors"

var (
	// ErrClientClosed reports a send to a connection that already left.
	ErrClientClosed = errors.New("client closed")
	// ErrSendBufferFull reports a slow consumer whose outbound queue
	// overflowed; the message is dropped, not retried.
	ErrSendBufferFull = errors.New("send buffer full")
)
