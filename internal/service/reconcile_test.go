package service

import (
	"testing"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		gatewayStatus string
		want          models.PaymentStatus
		changed       bool
	}{
		{"settlement", models.PayStatusSuccess, true},
		{"capture", models.PayStatusSuccess, true},
		{"expire", models.PayStatusExpired, true},
		{"cancel", models.PayStatusFailed, true},
		{"deny", models.PayStatusFailed, true},
		{"pending", "", false},
		{"authorize", "", false},
		{"refund", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.gatewayStatus, func(t *testing.T) {
			got, changed := mapTransactionStatus(tt.gatewayStatus)
			assert.Equal(t, tt.changed, changed)
			if tt.changed {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
