package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/grantmatch/core"
)

// Key prefixes for different data types
const (
	grantRecordPrefix        = "gntrec"
	grantRecordScrapedPrefix = "gntrecd"
	grantRecordIDSeq         = "gntrecseq"
	userRecordPrefix         = "usrrec"
)

// makeGrantRecordKey generates a key for a grant record by ID.
func makeGrantRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", grantRecordPrefix, id))
}

// makeGrantScrapedKey generates a composite key for the scraped-at index.
// Format: prefix:timestamp:id
func makeGrantScrapedKey(timestamp time.Time, id core.ID) []byte {
	prefix := grantRecordScrapedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialGrantScrapedKey generates a partial key for scraped-at seeks.
// Format: prefix:timestamp
func makePartialGrantScrapedKey(timestamp time.Time) []byte {
	prefix := grantRecordScrapedPrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeUserRecordKey generates a key for a user profile by user ID.
func makeUserRecordKey(userID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", userRecordPrefix, userID))
}
