package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/prasetyow/event-registration-service/internal/models"
	"github.com/prasetyow/event-registration-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPaymentService struct {
	initiateFn func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error)
	getFn      func(ctx context.Context, id uint) (*models.Payment, error)
	getByRegFn func(ctx context.Context, registrationID uint) (*models.Payment, error)
	handleFn   func(ctx context.Context, n service.GatewayNotification) error
}

func (m *mockPaymentService) Initiate(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
	return m.initiateFn(ctx, registrationID, method)
}
func (m *mockPaymentService) Get(ctx context.Context, id uint) (*models.Payment, error) {
	return m.getFn(ctx, id)
}
func (m *mockPaymentService) GetByRegistration(ctx context.Context, registrationID uint) (*models.Payment, error) {
	return m.getByRegFn(ctx, registrationID)
}
func (m *mockPaymentService) HandleNotification(ctx context.Context, n service.GatewayNotification) error {
	return m.handleFn(ctx, n)
}

func TestCreatePayment_Success(t *testing.T) {
	svc := &mockPaymentService{
		initiateFn: func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
			assert.Equal(t, uint(10), registrationID)
			assert.Equal(t, models.MethodBcaVA, method)
			return &service.InitiateResult{
				Payment: &models.Payment{
					ID:             1,
					RegistrationID: registrationID,
					OrderID:        "ORDER-abc",
					Method:         method,
					Status:         models.PayStatusPending,
					Amount:         150000,
				},
				Instructions: json.RawMessage(`{"va_numbers":[{"bank":"bca","va_number":"1234567890"}]}`),
			}, nil
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"registration_id":10,"payment_method":"bca_va"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/payments", body)

	require.NoError(t, h.CreatePayment(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "va_numbers")
	assert.Contains(t, rec.Body.String(), "ORDER-abc")
}

func TestCreatePayment_MissingRegistrationID(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments", `{"payment_method":"qris"}`)

	err := h.CreatePayment(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestCreatePayment_AlreadyPaid(t *testing.T) {
	svc := &mockPaymentService{
		initiateFn: func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
			return nil, service.ErrAlreadyPaid
		},
	}
	h := NewPaymentHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments", `{"registration_id":10,"payment_method":"qris"}`)

	err := h.CreatePayment(c)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
}

func TestCreatePayment_PendingPaymentExists(t *testing.T) {
	svc := &mockPaymentService{
		initiateFn: func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
			return nil, service.ErrPendingPaymentExists
		},
	}
	h := NewPaymentHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments", `{"registration_id":10,"payment_method":"qris"}`)

	err := h.CreatePayment(c)
	assert.Equal(t, http.StatusConflict, httpCode(t, err))
}

func TestCreatePayment_UnsupportedMethod(t *testing.T) {
	svc := &mockPaymentService{
		initiateFn: func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
			return nil, service.ErrUnsupportedMethod
		},
	}
	h := NewPaymentHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments", `{"registration_id":10,"payment_method":"paypal"}`)

	err := h.CreatePayment(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestCreatePayment_GatewayDown(t *testing.T) {
	svc := &mockPaymentService{
		initiateFn: func(ctx context.Context, registrationID uint, method models.PaymentMethod) (*service.InitiateResult, error) {
			return nil, service.ErrGatewayUnavailable
		},
	}
	h := NewPaymentHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments", `{"registration_id":10,"payment_method":"bca_va"}`)

	err := h.CreatePayment(c)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
}

func TestGetPayment_NotFound(t *testing.T) {
	svc := &mockPaymentService{
		getFn: func(ctx context.Context, id uint) (*models.Payment, error) {
			return nil, service.ErrPaymentNotFound
		},
	}
	h := NewPaymentHandler(svc)

	c, _ := newTestContext(http.MethodGet, "/api/v1/payments/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := h.GetPayment(c)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestWebhook_Acknowledged(t *testing.T) {
	var got service.GatewayNotification
	svc := &mockPaymentService{
		handleFn: func(ctx context.Context, n service.GatewayNotification) error {
			got = n
			return nil
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"order_id":"ORDER-abc","transaction_id":"tx-1","transaction_status":"settlement"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/payments/webhook", body)

	require.NoError(t, h.Webhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ORDER-abc", got.OrderID)
	assert.Equal(t, "settlement", got.TransactionStatus)
}

func TestWebhook_MissingOrderID(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{})

	c, _ := newTestContext(http.MethodPost, "/api/v1/payments/webhook", `{"transaction_status":"settlement"}`)

	err := h.Webhook(c)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestWebhook_GatewayVerificationFails(t *testing.T) {
	svc := &mockPaymentService{
		handleFn: func(ctx context.Context, n service.GatewayNotification) error {
			return service.ErrGatewayUnavailable
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"order_id":"ORDER-abc","transaction_status":"settlement"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/payments/webhook", body)

	err := h.Webhook(c)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
}

func TestWebhook_UnknownOrder(t *testing.T) {
	svc := &mockPaymentService{
		handleFn: func(ctx context.Context, n service.GatewayNotification) error {
			return service.ErrPaymentNotFound
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"order_id":"ORDER-nope","transaction_status":"settlement"}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/payments/webhook", body)

	err := h.Webhook(c)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestWebhook_InternalErrorStillAcked(t *testing.T) {
	svc := &mockPaymentService{
		handleFn: func(ctx context.Context, n service.GatewayNotification) error {
			return assert.AnError
		},
	}
	h := NewPaymentHandler(svc)

	body := `{"order_id":"ORDER-abc","transaction_status":"settlement"}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/payments/webhook", body)

	require.NoError(t, h.Webhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "OK")
}
