package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPending(t *testing.T) {
	tests := []struct {
		status  string
		pending bool
	}{
		{OrderStatusPendingPayment, true},
		{OrderStatusPaid, true},
		{OrderStatusProcessing, true},
		{OrderStatusShipped, false},
		{OrderStatusCompleted, false},
		{OrderStatusCancelled, false},
		{"", false},
	}

	for _, tt := range tests {
		o := Order{Status: tt.status}
		assert.Equal(t, tt.pending, o.IsPending(), "status %q", tt.status)
	}
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		status  string
		settled bool
	}{
		{"SETTLEMENT", true},
		{"settlement", true},
		{" settled ", true},
		{"Capture", true},
		{"pending", false},
		{"DENY", false},
		{"EXPIRE", false},
		{"", false},
	}

	for _, tt := range tests {
		p := Payment{Status: tt.status}
		assert.Equal(t, tt.settled, p.IsSettled(), "status %q", tt.status)
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, "ADMIN", NormalizeRole("  admin "))
	assert.Equal(t, "CUSTOMER", NormalizeRole("customer"))
	assert.Equal(t, "", NormalizeRole("   "))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&UserProfile{Role: "admin"}).IsAdmin())
	assert.True(t, (&UserProfile{Role: " ADMIN "}).IsAdmin())
	assert.False(t, (&UserProfile{Role: "customer"}).IsAdmin())
	assert.False(t, (&UserProfile{}).IsAdmin())
}
