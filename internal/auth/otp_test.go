package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOTPChallenge_InitialState(t *testing.T) {
	c := NewOTPChallenge()
	assert.Equal(t, OTPNotSent, c.State())
	assert.Empty(t, c.Phone())
	assert.False(t, c.Verified())
}

func TestOTPChallenge_PrepareSend(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(c *OTPChallenge)
		phone     string
		wantErr   bool
		wantState OTPState
	}{
		{
			name:      "empty phone rejected",
			setup:     func(c *OTPChallenge) {},
			phone:     "",
			wantErr:   true,
			wantState: OTPNotSent,
		},
		{
			name:      "fresh challenge accepts any phone",
			setup:     func(c *OTPChallenge) {},
			phone:     "+911234567890",
			wantState: OTPNotSent,
		},
		{
			name:      "resend for same phone allowed while sent",
			setup:     func(c *OTPChallenge) { c.markSent("+911234567890") },
			phone:     "+911234567890",
			wantState: OTPSent,
		},
		{
			name:      "phone change resets a sent challenge",
			setup:     func(c *OTPChallenge) { c.markSent("+911234567890") },
			phone:     "+15550001111",
			wantState: OTPNotSent,
		},
		{
			name: "phone change resets a verified challenge",
			setup: func(c *OTPChallenge) {
				c.markSent("+911234567890")
				c.markVerified()
			},
			phone:     "+15550001111",
			wantState: OTPNotSent,
		},
		{
			name: "resend for verified phone rejected",
			setup: func(c *OTPChallenge) {
				c.markSent("+911234567890")
				c.markVerified()
			},
			phone:     "+911234567890",
			wantErr:   true,
			wantState: OTPVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOTPChallenge()
			tt.setup(c)

			err := c.prepareSend(tt.phone)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantState, c.State())
		})
	}
}

func TestOTPChallenge_PrepareSubmit(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *OTPChallenge)
		code    string
		wantErr bool
	}{
		{
			name:    "not sent rejects submission",
			setup:   func(c *OTPChallenge) {},
			code:    "123456",
			wantErr: true,
		},
		{
			name:  "sent accepts submission",
			setup: func(c *OTPChallenge) { c.markSent("+911234567890") },
			code:  "123456",
		},
		{
			name: "failed accepts resubmission",
			setup: func(c *OTPChallenge) {
				c.markSent("+911234567890")
				c.markFailed()
			},
			code: "654321",
		},
		{
			name: "verified is terminal",
			setup: func(c *OTPChallenge) {
				c.markSent("+911234567890")
				c.markVerified()
			},
			code:    "123456",
			wantErr: true,
		},
		{
			name:    "empty code rejected",
			setup:   func(c *OTPChallenge) { c.markSent("+911234567890") },
			code:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOTPChallenge()
			tt.setup(c)

			err := c.prepareSubmit(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestOTPState_String(t *testing.T) {
	assert.Equal(t, "not_sent", OTPNotSent.String())
	assert.Equal(t, "sent", OTPSent.String())
	assert.Equal(t, "verified", OTPVerified.String())
	assert.Equal(t, "failed", OTPFailed.String())
}
