package service

import (
	"fmt"
	"math/rand"
	"time"
)

// formatRegistrationCode builds the human-readable registration code:
// {prefix}-{YYMMDD}-{4 random digits}. The random suffix does not guarantee
// uniqueness; callers retry against the unique index on collision.
func formatRegistrationCode(prefix string, ts time.Time, n int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, ts.Format("060102"), n)
}

func newRegistrationCode(prefix string) string {
	return formatRegistrationCode(prefix, time.Now(), rand.Intn(10000))
}
