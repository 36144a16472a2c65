package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Lines computes the xxHash64 of the concatenation of lines without joining them.
func Lines(lines [][]byte) uint64 {
	d := xxhash.New()
	for _, line := range lines {
		_, _ = d.Write(line)
	}

	return d.Sum64()
}
