package pg

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Keyset cursors must carry every column of the compound sort order of
// the query they belong to, otherwise pagination is unsound when those
// columns change between page fetches. Each cursor is the sort-key
// tuple of the last row of the page, serialized to base64url JSON.

// spaceCursor matches ORDER BY pinned DESC, last_ping_at DESC NULLS
// LAST, id DESC of the spaces feed.
type spaceCursor struct {
	Pinned     bool       `json:"pinned"`
	LastPingAt *time.Time `json:"last_ping_at"`
	Id         string     `json:"id"`
}

// timeIdCursor matches ORDER BY created_at DESC, id DESC listings
// (pings, api keys).
type timeIdCursor struct {
	CreatedAt time.Time `json:"created_at"`
	Id        string    `json:"id"`
}

func encodeCursor(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		// cursor types marshal unconditionally
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(raw)
}

func decodeCursor(s string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}
