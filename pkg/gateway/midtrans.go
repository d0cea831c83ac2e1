package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/service"
)

// expiryHours matches the gateway-side custom expiry and the stored
// expires_at on the payment.
const expiryHours = 24

// MidtransClient implements service.GatewayClient on top of the Midtrans
// CoreApi (bank_transfer and gopay charges, transaction status query).
type MidtransClient struct {
	core coreapi.Client
}

func NewMidtransClient(serverKey string, production bool) *MidtransClient {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	c := coreapi.Client{}
	c.New(serverKey, env)
	return &MidtransClient{core: c}
}

func (c *MidtransClient) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResult, error) {
	first, last := splitName(req.CustomerName)

	chargeReq := &coreapi.ChargeReq{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: int64(req.Amount),
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FName: first,
			LName: last,
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    fmt.Sprintf("%d", req.ItemID),
			Price: int64(req.Amount),
			Qty:   1,
			Name:  req.ItemName,
		}},
		CustomExpiry: &coreapi.CustomExpiry{
			ExpiryDuration: expiryHours,
			Unit:           "hour",
		},
	}

	switch req.Method {
	case models.MethodBcaVA:
		chargeReq.PaymentType = coreapi.PaymentTypeBankTransfer
		chargeReq.BankTransfer = &coreapi.BankTransferDetails{Bank: midtrans.BankBca}
	case models.MethodQris:
		chargeReq.PaymentType = coreapi.PaymentTypeGopay
	default:
		return nil, fmt.Errorf("unsupported payment method %q", req.Method)
	}

	resp, chargeErr := c.core.ChargeTransaction(chargeReq)
	if chargeErr != nil {
		return nil, fmt.Errorf("midtrans charge: %w", chargeErr)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal charge response: %w", err)
	}

	return &service.ChargeResult{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		RawResponse:   raw,
	}, nil
}

func (c *MidtransClient) TransactionStatus(ctx context.Context, orderID string) (*service.TransactionStatus, error) {
	resp, statusErr := c.core.CheckTransaction(orderID)
	if statusErr != nil {
		return nil, fmt.Errorf("midtrans status check: %w", statusErr)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal status response: %w", err)
	}

	return &service.TransactionStatus{
		OrderID:       resp.OrderID,
		TransactionID: resp.TransactionID,
		Status:        resp.TransactionStatus,
		Raw:           raw,
	}, nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
