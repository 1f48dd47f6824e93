package core

// Message is one inbound utterance to relay into a room.
type Message struct {
	Room string
	// From is the sender's client identifier, used for attribution.
	From string
	Text string
	// Lang is the language the text arrived in.
	Lang string
	// Sender is the live connection to exclude from delivery. It is nil
	// for messages that did not arrive over a socket (audio uploads).
	Sender *Client
}
