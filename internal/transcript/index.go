package transcript

import "time"

// SessionMeta is session-level metadata drawn from type=="session" records.
type SessionMeta struct {
	SessionID string
	StartedAt time.Time
	Cwd       string
}

// Index is the arena of records addressed by identifier. ByID is read-only
// once BuildIndex returns. When an id repeats in the input, the mapping
// keeps the later record (last write wins) while Order keeps every
// occurrence; session files are append-only, so a repeated id is treated as
// a corrected record rather than an error.
type Index struct {
	Meta    SessionMeta
	Records []*Record // arrival order, including records without an id
	Order   []string  // ids in arrival order
	ByID    map[string]*Record
}

// BuildIndex consumes the record sequence once, extracting session metadata
// and building the id lookup. Every session record refreshes Meta from
// whichever fields are present; absent fields never clear earlier values.
func BuildIndex(recs []*Record) *Index {
	idx := &Index{
		Records: recs,
		ByID:    make(map[string]*Record),
	}
	for _, rec := range recs {
		if rec.Type == "session" {
			if rec.ID != "" {
				idx.Meta.SessionID = rec.ID
			}
			if !rec.Timestamp.IsZero() {
				idx.Meta.StartedAt = rec.Timestamp
			}
			if rec.Cwd != "" {
				idx.Meta.Cwd = rec.Cwd
			}
		}
		if rec.ID != "" {
			idx.Order = append(idx.Order, rec.ID)
			idx.ByID[rec.ID] = rec
		}
	}
	return idx
}
