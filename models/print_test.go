package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputePrice(t *testing.T) {
	require.InDelta(t, 5.00, ComputePrice(250, 20.00), 1e-9)
	require.InDelta(t, 12.00, ComputePrice(300, 40.00), 1e-9)
	require.Zero(t, ComputePrice(250, 0))
}

func TestPaymentStatusValid(t *testing.T) {
	require.True(t, PaymentOpen.Valid())
	require.True(t, PaymentPaid.Valid())
	require.False(t, PaymentStatus("").Valid())
	require.False(t, PaymentStatus("pending").Valid())
}
