package returns

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const returnNumberPrefix = "RET-"

// base36 digits used for the random suffix
const suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var returnNumberPattern = regexp.MustCompile(`^RET-[0-9A-Z]+-[0-9A-Z]{4}$`)

// NewReturnNumber generates a return number of the form
// RET-<base36 millis>-<4 random chars>, all uppercase. The timestamp keeps
// numbers roughly sortable, the random suffix avoids collisions between
// requests in the same millisecond. Callers still retry on a unique-index
// violation since the suffix space is small.
func NewReturnNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("returns: reading random suffix: %v", err))
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}

	return returnNumberPrefix + ts + "-" + string(suffix)
}

// IsValidReturnNumber reports whether s matches the generated wire format
func IsValidReturnNumber(s string) bool {
	return returnNumberPattern.MatchString(s)
}
