package transcript

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned by ResolveLeaf when the index holds no ids at
// all, so no chain starting point exists.
var ErrNoRecords = errors.New("could not resolve leaf id (empty file?)")

// ResolveLeaf picks the starting point of a chain walk. An explicit leaf
// must exist in the index. Without one, the most recent message record
// wins, falling back to the last id seen in arrival order.
func ResolveLeaf(idx *Index, leaf string) (string, error) {
	if leaf != "" {
		if _, ok := idx.ByID[leaf]; !ok {
			return "", fmt.Errorf("leaf id not found: %s", leaf)
		}
		return leaf, nil
	}

	for i := len(idx.Order) - 1; i >= 0; i-- {
		rid := idx.Order[i]
		rec, ok := idx.ByID[rid]
		if !ok {
			continue
		}
		if rec.Type == "message" {
			return rid, nil
		}
	}

	if len(idx.Order) > 0 {
		return idx.Order[len(idx.Order)-1], nil
	}
	return "", ErrNoRecords
}

// Chain walks parentId links backward from leafID and returns the records
// oldest-first. A visited set stops the walk on the first repeated id, so
// a parent cycle yields a finite chain instead of hanging.
func Chain(idx *Index, leafID string) []*Record {
	var ids []string
	seen := make(map[string]bool)

	cur := leafID
	for cur != "" && !seen[cur] {
		seen[cur] = true
		ids = append(ids, cur)
		rec, ok := idx.ByID[cur]
		if !ok {
			break
		}
		cur = rec.ParentID
	}

	recs := make([]*Record, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if rec, ok := idx.ByID[ids[i]]; ok {
			recs = append(recs, rec)
		}
	}
	return recs
}
