package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateReservationCode builds a human-readable code embedding the
// creation date, e.g. RES-20240101-4F2A9C.
func GenerateReservationCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("RES-%s-%s", now.Format("20060102"), suffix)
}
