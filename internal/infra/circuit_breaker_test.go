package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errGateway = errors.New("gateway down")

func failing() error { return errGateway }
func succeeding() error { return nil }

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("test", 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(failing), errGateway)
	}
	assert.Equal(t, "open", cb.State())

	// Calls fast-fail while open
	assert.ErrorIs(t, cb.Execute(succeeding), ErrCircuitOpen)
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	assert.ErrorIs(t, cb.Execute(failing), errGateway)
	assert.Equal(t, "open", cb.State())

	time.Sleep(15 * time.Millisecond)

	// First probe after the cooldown closes the circuit on success
	assert.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreakerReopensOnFailedProbe(t *testing.T) {
	cb := NewCircuitBreaker("test", 1, 10*time.Millisecond)

	assert.ErrorIs(t, cb.Execute(failing), errGateway)
	time.Sleep(15 * time.Millisecond)

	assert.ErrorIs(t, cb.Execute(failing), errGateway)
	assert.Equal(t, "open", cb.State())
}

func TestNormalizePhone(t *testing.T) {
	c := NewWhatsAppClient("http://gateway", "token", "91")

	assert.Equal(t, "919876543210", c.normalizePhone("9876543210"))
	assert.Equal(t, "919876543210", c.normalizePhone("98765 43210"))
	assert.Equal(t, "919876543210", c.normalizePhone("919876543210"))
	assert.Equal(t, "4412345678901", c.normalizePhone("+44 1234 5678901"))
	assert.Equal(t, "", c.normalizePhone("no digits"))
}
