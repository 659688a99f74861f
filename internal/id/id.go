package id

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"
)

var fallbackSeq atomic.Uint64

// New returns a 32-character hex job id. When the system random source
// fails it falls back to a time and sequence based id that is still unique
// within the process.
func New() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "job-" + strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(fallbackSeq.Add(1), 36)
	}
	return hex.EncodeToString(b[:])
}
