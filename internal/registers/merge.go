// Package registers holds pure transforms over extracted register lists:
// merging batch results and estimating extraction confidence.
package registers

import (
	"sort"

	"github.com/joseph-ayodele/modbus-extractor/internal/entity"
)

// completeness scores how much useful detail a record carries. Used only
// to break ties between duplicate addresses from different batches.
func completeness(r entity.Register) int {
	score := 0
	if len(r.Name) > 15 {
		score++
	}
	if len(r.Description) > 10 {
		score++
	}
	return score
}

// Merge combines register lists from multiple batches into one list,
// deduplicated by address and sorted ascending. When two records share an
// address, the more complete one wins; on equal completeness the
// earlier-seen record wins, so merge order is deterministic.
func Merge(lists ...entity.RegisterList) entity.RegisterList {
	byAddr := make(map[int]entity.Register)
	var order []int

	for _, list := range lists {
		for _, r := range list {
			existing, seen := byAddr[r.Address]
			if !seen {
				byAddr[r.Address] = r
				order = append(order, r.Address)
				continue
			}
			if completeness(r) > completeness(existing) {
				byAddr[r.Address] = r
			}
		}
	}

	out := make(entity.RegisterList, 0, len(order))
	for _, addr := range order {
		out = append(out, byAddr[addr])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}

// MergeIncremental folds newly extracted records into a prior result.
// Prior records win unconditionally on address conflict; an incremental
// run refines coverage, it never rewrites what an earlier run produced.
func MergeIncremental(prior, incoming entity.RegisterList) entity.RegisterList {
	known := make(map[int]struct{}, len(prior))
	for _, r := range prior {
		known[r.Address] = struct{}{}
	}

	out := make(entity.RegisterList, 0, len(prior)+len(incoming))
	out = append(out, prior...)
	for _, r := range incoming {
		if _, dup := known[r.Address]; dup {
			continue
		}
		known[r.Address] = struct{}{}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out
}
