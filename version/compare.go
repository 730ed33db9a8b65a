package version

import (
	"fmt"
	"strconv"
	"strings"
)

type semver [3]int

func parse(s string) (semver, error) {
	var v semver

	core, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(s), "v"), "-")
	parts := strings.Split(core, ".")
	if len(parts) != len(v) {
		return v, fmt.Errorf("version: %q is not major.minor.patch", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("version: %q is not major.minor.patch", s)
		}
		v[i] = n
	}
	return v, nil
}

// Compare orders two major.minor.patch versions, returning 1, 0 or -1.
// A leading v and any pre-release suffix are ignored.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}
	return 0, nil
}
