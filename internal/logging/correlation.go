package logging

import (
	"strconv"
	"sync/atomic"
	"time"
)

var correlationCounter uint64

// NewOperationID returns a process-unique identifier used to correlate
// the log lines of one remote-command exchange.
func NewOperationID() string {
	return newCorrelationID("op")
}

func newCorrelationID(prefix string) string {
	seq := atomic.AddUint64(&correlationCounter, 1)
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + strconv.FormatUint(seq, 10)
}
