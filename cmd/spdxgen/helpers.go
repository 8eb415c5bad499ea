package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"spdxgen/internal/docstore"
	"spdxgen/internal/license"
)

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

// licensingInfos resolves every licensing link of a document to its full
// extracted record. Links whose association row vanished are skipped.
func licensingInfos(ctx context.Context, store *docstore.Store, docID int64) ([]*license.Info, error) {
	entries, err := store.ListLicensings(ctx, docID)
	if err != nil {
		return nil, err
	}
	infos := make([]*license.Info, 0, len(entries))
	for _, entry := range entries {
		info, err := store.FindLicensing(ctx, entry.AssociationID)
		if err != nil {
			return nil, err
		}
		if info == nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}
