package build

import (
	"github.com/minio/highwayhash"
	"strconv"
)

// hashKey must stay 32 bytes; changing it invalidates every recorded stdlib hash
var hashKey = []byte("sequencescript/stdlib-hash/key/1")

// HashText returns the hex encoded 64 bit HighwayHash of text
func HashText(text string) string {
	return strconv.FormatUint(highwayhash.Sum64([]byte(text), hashKey), 16)
}
