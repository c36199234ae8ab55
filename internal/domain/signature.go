package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Signature is the stable digest used for baseline matching. It covers
// (rule id, offending module, offending target) and deliberately excludes
// the source line, so edits that only shift lines do not surface previously
// accepted findings as new.
type Signature string

// SignatureFor derives the violation's baseline key. Stable across runs,
// evaluation order, and formatting.
func SignatureFor(v Violation) Signature {
	payload := fmt.Sprintf("rule=%s\x00module=%s\x00target=%s", v.RuleID, v.Module, v.Target)
	sum := sha256.Sum256([]byte(payload))
	return Signature(hex.EncodeToString(sum[:]))
}
