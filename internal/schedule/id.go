package schedule

import (
	"crypto/rand"
	"time"
)

// idTimeLayout is the timestamp prefix of a session ID, e.g.
// "20250826110956" for 2025-08-26 11:09:56 local time.
const idTimeLayout = "20060102150405"

// idSuffixLen is the number of random characters appended to the timestamp.
// The suffix keeps IDs distinct even when two are generated within the same
// second.
const idSuffixLen = 6

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewID generates a unique session identifier: a local timestamp followed by
// six random uppercase alphanumerics, e.g. "20250826110956JF8FQY".
func NewID() string {
	return newIDAt(time.Now())
}

func newIDAt(t time.Time) string {
	return t.Format(idTimeLayout) + randomSuffix(idSuffixLen)
}

// NewLink builds a meeting join URL from the configured base and room prefix
// plus a fresh unique token. The token is generated independently of any
// session ID, so regenerating a link never collides with an earlier one.
func NewLink(baseURL, roomPrefix string) string {
	return baseURL + roomPrefix + NewID()
}

// randomSuffix returns n random characters from idAlphabet using crypto/rand.
func randomSuffix(n int) string {
	buf := make([]byte, n)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(buf)

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(out)
}
