package migrate

import "testing"

func TestFingerprint_ContentAddressed(t *testing.T) {
	a := Fingerprint([]byte("<xml>same</xml>"))
	b := Fingerprint([]byte("<xml>same</xml>"))
	if a != b {
		t.Fatal("identical content produced different tokens")
	}
	if c := Fingerprint([]byte("<xml>other</xml>")); c == a {
		t.Fatal("different content produced the same token")
	}
}

func TestDedupFilter_Check(t *testing.T) {
	d := NewDedupFilter()
	if d.Check([]byte("record-1")) {
		t.Fatal("first sighting reported as duplicate")
	}
	if !d.Check([]byte("record-1")) {
		t.Fatal("second sighting not reported as duplicate")
	}
	if d.Check([]byte("record-2")) {
		t.Fatal("unrelated record reported as duplicate")
	}
}
