package plan

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for content-addressed plan identity. The version suffix
// enables future algorithm migration without colliding with old IDs.
const fingerprintDomain = "mason/plan/v1"

// Fingerprint computes a content-addressed identity for a plan.
//
// Two structurally equal plans always fingerprint identically, across
// processes and restarts, so the fingerprint can serve as a stable candidate
// key in the analysis store and for deduplication in an outer search.
//
// The canonical form is the String rendering with all field and variable
// names NFC-normalized, hashed with SHA-256 under a domain prefix. The null
// byte separates domain from data to prevent boundary ambiguity.
func Fingerprint(p Plan) string {
	canonical := norm.NFC.String(String(p))
	h := sha256.New()
	h.Write([]byte(fingerprintDomain))
	h.Write([]byte{0x00})
	h.Write([]byte(canonical))
	return hex.EncodeToString(h.Sum(nil))
}
