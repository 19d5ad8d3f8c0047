// Package daily picks the answer of the day: the target a simulation plays
// when the caller names none. The pick is keyed on the UTC date so every
// process with the same salt and dictionary agrees on it.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Target is the answer chosen for one date.
type Target struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// Picker maps dates onto an answer dictionary.
type Picker struct {
	salt    []byte
	answers []string
}

// NewPicker keeps a reference to answers; the slice must not change.
func NewPicker(salt string, answers []string) *Picker {
	return &Picker{salt: []byte(salt), answers: answers}
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// For returns the target of t's UTC day. Word is empty when the dictionary
// is empty.
func (p *Picker) For(t time.Time) Target {
	tg := Target{Date: DateKey(t)}
	if len(p.answers) == 0 {
		return tg
	}
	mac := hmac.New(sha256.New, p.salt)
	mac.Write([]byte(tg.Date))
	n := binary.BigEndian.Uint64(mac.Sum(nil)[:8])
	tg.Index = int(n % uint64(len(p.answers)))
	tg.Word = p.answers[tg.Index]
	return tg
}
