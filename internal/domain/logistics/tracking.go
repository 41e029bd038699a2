package logistics

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const trackingNumberPrefix = "TRK-"

const trackingSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTrackingNumber generates a tracking number of the form
// TRK-<base36 millis>-<6 random chars>, all uppercase. Used when the caller
// does not bring a carrier-issued tracking number.
func NewTrackingNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("logistics: reading random suffix: %v", err))
	}
	suffix := make([]byte, 6)
	for i, b := range buf {
		suffix[i] = trackingSuffixAlphabet[int(b)%len(trackingSuffixAlphabet)]
	}

	return trackingNumberPrefix + ts + "-" + string(suffix)
}
