package persist

import (
	"encoding/json"
	"fmt"

	"github.com/ngoconnect/ngoconnect/internal/crypto"
)

// Codec turns records into bytes for byte-oriented backends, sealing them when a
// Sealer is configured.
type Codec struct {
	Sealer *crypto.Sealer
}

// Encode serializes rec
func (c *Codec) Encode(rec *Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}
	if c == nil || c.Sealer == nil {
		return data, nil
	}

	sealed, err := c.Sealer.Seal(data)
	if err != nil {
		return nil, fmt.Errorf("seal session record: %w", err)
	}
	return []byte(sealed), nil
}

// Decode reverses Encode
func (c *Codec) Decode(data []byte) (*Record, error) {
	if c != nil && c.Sealer != nil {
		opened, err := c.Sealer.Open(string(data))
		if err != nil {
			return nil, fmt.Errorf("open session record: %w", err)
		}
		data = opened
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", err)
	}
	return &rec, nil
}
