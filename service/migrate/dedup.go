package migrate

import (
	"crypto/md5"
	"encoding/hex"
)

// DedupFilter rejects repeated source content within one run. The
// fingerprint is a pure function of the record bytes, so identical content
// yields the identical token across runs too.
type DedupFilter struct {
	seen map[string]struct{}
}

func NewDedupFilter() *DedupFilter {
	return &DedupFilter{seen: make(map[string]struct{})}
}

// Fingerprint returns the content token for a record's bytes.
func Fingerprint(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// Seen reports whether a token was already marked this run.
func (d *DedupFilter) Seen(token string) bool {
	_, ok := d.seen[token]
	return ok
}

// Mark records a token in the run-scoped seen-set.
func (d *DedupFilter) Mark(token string) {
	d.seen[token] = struct{}{}
}

// Check fingerprints content and marks it, returning true when the content
// was already seen (the caller drops the record).
func (d *DedupFilter) Check(content []byte) bool {
	token := Fingerprint(content)
	if d.Seen(token) {
		return true
	}
	d.Mark(token)
	return false
}
