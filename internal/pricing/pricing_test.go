package pricing_test

import (
	"testing"

	"app/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice_WithIVA(t *testing.T) {
	// 1000 + 21% = 1210
	assert.InDelta(t, 1210.0, pricing.FinalPrice(1000, 21), 1e-9)
}

func TestFinalPrice_ZeroIVA(t *testing.T) {
	assert.InDelta(t, 500.0, pricing.FinalPrice(500, 0), 1e-9)
}

func TestFinalPrice_ZeroBase(t *testing.T) {
	assert.InDelta(t, 0.0, pricing.FinalPrice(0, 21), 1e-9)
}

func TestFinalPrice_FractionalIVA(t *testing.T) {
	assert.InDelta(t, 1105.0, pricing.FinalPrice(1000, 10.5), 1e-9)
}
