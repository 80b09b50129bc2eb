package inbound

import (
	"hash/fnv"
)

// estimateMagnitude produces a stable change-size estimate in [1,100] for
// a path at a ref. This is a documented placeholder, not a real line-diff
// count: it exists so conflict entries carry comparable, deterministic
// numbers without another provider round trip. Severity never depends on
// these values, only on status pairs, so swapping in a real numstat call
// later is safe.
func estimateMagnitude(path, ref string) int {
	h := fnv.New32a()
	h.Write([]byte(path + "|" + ref))
	return int(h.Sum32()%100) + 1
}
