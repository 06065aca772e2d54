package badger

import (
	"fmt"
	"strconv"

	"github.com/poiesic/versebase/core"
)

// Key layout for persisted data
const (
	indexEntryPrefix = "pasent"
	generationKey    = "pasgen"
)

// makeEntryKey generates a key for an index entry within a generation.
func makeEntryKey(gen uint64, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", indexEntryPrefix, gen, id))
}

// generationPrefix returns the iteration prefix for one generation's entries.
func generationPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d:", indexEntryPrefix, gen))
}

// allEntriesPrefix covers entry keys from every generation.
func allEntriesPrefix() []byte {
	return []byte(indexEntryPrefix + ":")
}

func encodeGeneration(gen uint64) []byte {
	return []byte(strconv.FormatUint(gen, 10))
}

func decodeGeneration(val []byte) (uint64, error) {
	return strconv.ParseUint(string(val), 10, 64)
}
