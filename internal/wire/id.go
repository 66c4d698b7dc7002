package wire

import "github.com/oklog/ulid/v2"

// NewMessageID returns a sortable, unique identifier suitable for tagging a
// synthetic test frame or a CLI demo event.
func NewMessageID() string {
	return ulid.Make().String()
}
