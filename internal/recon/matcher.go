// Package recon finds discrepancies between two order record collections
// keyed by alternate identifiers. Settlement reports frequently populate
// only one of the order-level or item-level identifiers per row, so a
// record counts as matched when either of its non-empty keys finds a
// counterpart on the other side; it is reported only when both comparisons
// fail.
package recon

// Keyed exposes the two alternate join keys of a reconcilable record.
// Either key may be empty on a given record.
type Keyed interface {
	ReconKeys() (orderID, orderItemID string)
}

// Result holds the discrepancies for one ordered pair of collections.
// Slices preserve the input order of the collection they were filtered from.
type Result[S, T Keyed] struct {
	MissingInTarget []S `json:"missing_in_target"`
	MissingInSource []T `json:"missing_in_source"`
}

// keySets holds hash-set membership for both key spaces of one collection.
type keySets struct {
	orderIDs     map[string]struct{}
	orderItemIDs map[string]struct{}
}

func collectKeys[R Keyed](records []R) keySets {
	ks := keySets{
		orderIDs:     make(map[string]struct{}, len(records)),
		orderItemIDs: make(map[string]struct{}, len(records)),
	}
	for _, r := range records {
		orderID, itemID := r.ReconKeys()
		if orderID != "" {
			ks.orderIDs[orderID] = struct{}{}
		}
		if itemID != "" {
			ks.orderItemIDs[itemID] = struct{}{}
		}
	}
	return ks
}

// matchedIn reports whether any non-empty key of r appears in the
// corresponding set. A record with no keys at all never matches.
func matchedIn(r Keyed, ks keySets) bool {
	orderID, itemID := r.ReconKeys()
	if itemID != "" {
		if _, ok := ks.orderItemIDs[itemID]; ok {
			return true
		}
	}
	if orderID != "" {
		if _, ok := ks.orderIDs[orderID]; ok {
			return true
		}
	}
	return false
}

// Match computes both discrepancy lists for the ordered pair
// (source, target) in O(len(source) + len(target)). Nil collections are
// treated as empty.
func Match[S, T Keyed](source []S, target []T) Result[S, T] {
	targetKeys := collectKeys(target)
	sourceKeys := collectKeys(source)

	res := Result[S, T]{
		MissingInTarget: make([]S, 0),
		MissingInSource: make([]T, 0),
	}
	for _, s := range source {
		if !matchedIn(s, targetKeys) {
			res.MissingInTarget = append(res.MissingInTarget, s)
		}
	}
	for _, t := range target {
		if !matchedIn(t, sourceKeys) {
			res.MissingInSource = append(res.MissingInSource, t)
		}
	}
	return res
}
