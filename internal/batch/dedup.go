package batch

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// previewRunes bounds how much of each turn is kept for log output.
const previewRunes = 100

// fileFingerprint identifies a transcript by its classified content, so the
// same conversation exported as .docx and .txt is analyzed once.
type fileFingerprint struct {
	Path    string
	Turns   int
	Digest  string
	Preview string // first turn, truncated
}

// BuildFingerprint hashes the speaker and text of every turn in order.
func BuildFingerprint(path string, ts []turns.Turn) fileFingerprint {
	h := sha256.New()
	for _, t := range ts {
		h.Write([]byte(t.Speaker.String()))
		h.Write([]byte{0})
		h.Write([]byte(t.Text))
		h.Write([]byte{0})
	}

	fp := fileFingerprint{
		Path:   path,
		Turns:  len(ts),
		Digest: hex.EncodeToString(h.Sum(nil)),
	}
	if len(ts) > 0 {
		r := []rune(ts[0].Text)
		if len(r) > previewRunes {
			r = r[:previewRunes]
		}
		fp.Preview = string(r)
	}
	return fp
}

// seenSet remembers fingerprints already analyzed in a run.
type seenSet map[string]string // digest -> first path

// Lookup returns the path that first produced fp's content, if it was
// recorded. Empty transcripts are never considered duplicates.
func (s seenSet) Lookup(fp fileFingerprint) (string, bool) {
	if fp.Turns == 0 {
		return "", false
	}
	first, ok := s[fp.Digest]
	return first, ok
}

// Record marks fp as analyzed. Only the first path for a digest is kept.
func (s seenSet) Record(fp fileFingerprint) {
	if fp.Turns == 0 {
		return
	}
	if _, ok := s[fp.Digest]; !ok {
		s[fp.Digest] = fp.Path
	}
}
