package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// GenerateTxHash returns a simulated transaction hash: 0x followed by 64 hex chars.
func GenerateTxHash() string {
	buf := make([]byte, 32)
	_, _ = rand.Read(buf)
	return hexutil.Encode(buf)
}

// GenerateAuctionID returns an id of the form auction_<unix-ms>_<random>.
func GenerateAuctionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("auction_%d_%s", now.UnixMilli(), suffix)
}
