package eventstream

import (
	"bytes"

	"github.com/danshapiro/kilroy/internal/wire"
)

// syntheticResponse builds the response shape handed to unmarshallers from
// a decoded wire message: payload as body, string headers only, empty
// execution attributes.
func syntheticResponse(msg wire.Message) SyntheticResponse {
	return SyntheticResponse{
		Body:                bytes.NewReader(msg.Payload),
		Headers:             msg.StringHeaders(),
		ExecutionAttributes: map[string]any{},
	}
}
