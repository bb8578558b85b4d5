package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/cognatedb/core"
)

// Key prefixes for different data types
const (
	groupRecordPrefix  = "cogrec"
	groupOrdinalPrefix = "cogord"
)

// makeGroupKey generates a key for a group record by ID.
func makeGroupKey(id core.GroupID) []byte {
	return []byte(fmt.Sprintf("%s:%d", groupRecordPrefix, id))
}

// makeOrdinalKey generates a key for the ordinal index.
// Format: prefix:position
func makeOrdinalKey(position uint64) []byte {
	prefix := groupOrdinalPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	buf := make([]byte, prefixSize+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}
