package domain_test

import (
	"testing"

	"dukastore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local format with leading zero", input: "0712345678", want: "254712345678"},
		{name: "bare subscriber number", input: "712345678", want: "254712345678"},
		{name: "already international", input: "254712345678", want: "254712345678"},
		{name: "international with plus", input: "+254712345678", want: "254712345678"},
		{name: "spaces and dashes stripped", input: "0712-345 678", want: "254712345678"},
		{name: "too short", input: "07123", wantErr: true},
		{name: "too long", input: "07123456789", wantErr: true},
		{name: "wrong network prefix", input: "0112345678", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters only", input: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.NormalizePhone(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPaymentRequest(t *testing.T) {
	t.Run("valid request normalizes phone", func(t *testing.T) {
		req, err := domain.NewPaymentRequest(500, "0712345678", "Order123")
		require.NoError(t, err)
		assert.Equal(t, int64(500), req.AmountKES)
		assert.Equal(t, "254712345678", req.Phone)
		assert.Equal(t, "Order123", req.OrderRef)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := domain.NewPaymentRequest(0, "0712345678", "Order123")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))

		_, err = domain.NewPaymentRequest(-5, "0712345678", "Order123")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))
	})

	t.Run("rejects empty phone", func(t *testing.T) {
		_, err := domain.NewPaymentRequest(500, "", "Order123")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))
	})

	t.Run("rejects empty order reference", func(t *testing.T) {
		_, err := domain.NewPaymentRequest(500, "0712345678", "")
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidRequest))
	})
}

func TestParsePaymentStatus(t *testing.T) {
	assert.Equal(t, domain.StatusCompleted, domain.ParsePaymentStatus("completed"))
	assert.Equal(t, domain.StatusFailed, domain.ParsePaymentStatus("failed"))
	assert.Equal(t, domain.StatusPending, domain.ParsePaymentStatus("pending"))
	assert.Equal(t, domain.StatusPending, domain.ParsePaymentStatus(""))
	assert.Equal(t, domain.StatusPending, domain.ParsePaymentStatus("whatever"))
}
