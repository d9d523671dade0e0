package projectjson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"

	"aether/cmd/aether/project"
)

// Fingerprint returns the SHA-256 of the RFC 8785 canonical form of s.
// Selection is left out, so changing it does not make a project dirty.
func Fingerprint(s *project.State) (string, error) {
	doc, err := toDocument(s)
	if err != nil {
		return "", err
	}
	doc.Selection = nil
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	canon, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize: %w", err)
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}
