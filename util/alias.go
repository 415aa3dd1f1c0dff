package util

import (
	"fmt"
	"hash/fnv"
)

var names = []string{
	"Dog",
	"Cat",
	"Frog",
	"Owl",
	"Fox",
	"Otter",
	"Heron",
	"Badger",
}

// GenerateAlias is stable for a given seed so an anonymous author keeps the
// same alias across page loads.
func GenerateAlias(seed string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return fmt.Sprintf("Anon %v", names[h.Sum32()%uint32(len(names))])
}
