// Package domain contains core concepts of the chat relay.
// No runtime, network, or storage logic should be added here.
package domain

// UserID identifies an account. IDs are allocated by the user repository
// and treated as opaque everywhere else.
type UserID int64

// Identity is an authenticated participant. Resolved once per connection
// during the handshake and immutable for the connection's lifetime.
type Identity struct {
	ID          UserID
	DisplayName string
}
