package selector

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a requested batch size: a non-negative count or All.
type Size int

// All requests every unseen question in the module.
const All Size = -1

// ParseSize accepts a positive count or "all" (any case).
func ParseSize(s string) (Size, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid question count %q: want a positive number or \"all\"", s)
	}
	return Size(n), nil
}

func (s Size) String() string {
	if s == All {
		return "all"
	}
	return strconv.Itoa(int(s))
}
