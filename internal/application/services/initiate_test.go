package services_test

import (
	"context"
	"testing"

	"dukastore/internal/application"
	"dukastore/internal/application/services"
	"dukastore/internal/domain"
	"dukastore/internal/infrastructure/daraja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiator_Success(t *testing.T) {
	gateway := services.NewMockPaymentGateway()
	initiator := services.NewInitiator(gateway, testLogger())

	result, err := initiator.Initiate(context.Background(), services.InitiateCommand{
		AmountKES: 500,
		Phone:     "0712345678",
		OrderRef:  "1001",
	})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_123", result.CheckoutRequestID)
	assert.Equal(t, "Success. Request accepted for processing", result.CustomerMessage)

	// The gateway sees the normalized phone number, never the raw input.
	require.Equal(t, 1, gateway.STKCallCount())
	assert.Equal(t, "254712345678", gateway.STKCalls[0].Phone)
	assert.Equal(t, int64(500), gateway.STKCalls[0].AmountKES)
}

func TestInitiator_InvalidInputRejectedBeforeNetwork(t *testing.T) {
	tests := []struct {
		name string
		cmd  services.InitiateCommand
	}{
		{name: "zero amount", cmd: services.InitiateCommand{AmountKES: 0, Phone: "0712345678", OrderRef: "1"}},
		{name: "empty phone", cmd: services.InitiateCommand{AmountKES: 500, Phone: "", OrderRef: "1"}},
		{name: "bad phone", cmd: services.InitiateCommand{AmountKES: 500, Phone: "12345", OrderRef: "1"}},
		{name: "empty order ref", cmd: services.InitiateCommand{AmountKES: 500, Phone: "0712345678", OrderRef: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := services.NewMockPaymentGateway()
			initiator := services.NewInitiator(gateway, testLogger())

			_, err := initiator.Initiate(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))
			assert.Equal(t, 0, gateway.TokenCalls)
			assert.Equal(t, 0, gateway.STKCallCount())
		})
	}
}

func TestInitiator_AuthFailureSkipsPush(t *testing.T) {
	gateway := services.NewMockPaymentGateway()
	gateway.TokenFn = func(ctx context.Context) (string, error) {
		// Gateway answered with an empty object, no access_token.
		return "", domain.NewAuthFailedError(&daraja.GatewayError{StatusCode: 200, Payload: []byte(`{}`)})
	}
	initiator := services.NewInitiator(gateway, testLogger())

	_, err := initiator.Initiate(context.Background(), services.InitiateCommand{
		AmountKES: 500,
		Phone:     "0712345678",
		OrderRef:  "1001",
	})
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeAuthFailed))
	assert.Equal(t, 0, gateway.STKCallCount())
}

func TestInitiator_NeverReturnsEmptyCorrelationID(t *testing.T) {
	gateway := services.NewMockPaymentGateway()
	gateway.STKPushFn = func(ctx context.Context, token string, req domain.PaymentRequest) (*application.InitiationResult, error) {
		return &application.InitiationResult{CheckoutRequestID: ""}, nil
	}
	initiator := services.NewInitiator(gateway, testLogger())

	_, err := initiator.Initiate(context.Background(), services.InitiateCommand{
		AmountKES: 500,
		Phone:     "0712345678",
		OrderRef:  "1001",
	})
	require.Error(t, err)
	assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInitiationFailed))
}
