package tun

import (
	"regexp"
	"strconv"
)

var tunNameRx = regexp.MustCompile(`^tun([0-9]+)$`)

// NextName returns the first name tun0, tun1, ... that is not in names.
// Gaps are filled, so {tun0, tun2} yields tun1.
func NextName(names []string) string {
	taken := make(map[int]struct{})
	mark := struct{}{}

	for _, name := range names {
		m := tunNameRx.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			// larger than int, can never collide with the scan below
			continue
		}
		taken[idx] = mark
	}

	for idx := 0; ; idx++ {
		if _, exists := taken[idx]; !exists {
			return "tun" + strconv.Itoa(idx)
		}
	}
}
