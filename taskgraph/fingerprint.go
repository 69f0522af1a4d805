package taskgraph

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a 64-bit content hash identifying a (task, dependency-set)
// pair for caching. Two tasks whose fingerprints are equal are guaranteed
// to produce the same TaskValue given the same inputs (spec.md §3.3).
type Fingerprint uint64

// FingerprintStatic hashes an arbitrary stable byte encoding of a task's
// static definition (e.g. its SQL text or scale config, gob/json-encoded
// by the caller) into the StaticHash a Task carries. Kept as a free
// function, rather than baked into Task construction, so callers can hash
// whatever representation is cheapest for their task kind.
func FingerprintStatic(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// combine computes the fingerprint of a task from its own static hash and
// the (variable, producing-fingerprint) pairs of its resolved inputs, in
// declared order. Identical tasks with identical dependency fingerprints
// always combine to the same Fingerprint.
func combine(staticHash uint64, inputs []edgeFingerprint) Fingerprint {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], staticHash)
	_, _ = h.Write(buf[:])
	for _, e := range inputs {
		_, _ = h.WriteString(e.Var.Name())
		binary.LittleEndian.PutUint64(buf[:], uint64(e.Var.Kind()))
		_, _ = h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(e.Fingerprint))
		_, _ = h.Write(buf[:])
	}
	return Fingerprint(h.Sum64())
}
