package raster

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// Threads selects the worker count for parallel work. The zero value is
// automatic and resolves to the logical CPU count when Count is called.
type Threads int

const ThreadsAuto Threads = 0

func ParseThreads(s string) (Threads, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return ThreadsAuto, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: threads %q must be \"auto\" or a positive number", ErrInvalidParameter, s)
	}
	return Threads(n), nil
}

func (t Threads) Count() int {
	if t <= 0 {
		return max(1, runtime.NumCPU())
	}
	return int(t)
}

func (t Threads) String() string {
	if t <= 0 {
		return "auto"
	}
	return strconv.Itoa(int(t))
}
