package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusProcessing, StatusConfirmed, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusShipped, false},
		{StatusProcessing, StatusDelivered, false},
		{StatusConfirmed, StatusShipped, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusDelivered, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusReturnRequested, true},
		{StatusDelivered, StatusConfirmed, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusReturnRequested, StatusReturned, true},
		{StatusReturnRequested, StatusRejected, true},
		{StatusReturnRequested, StatusDelivered, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusReturned, StatusProcessing, false},
		{StatusRejected, StatusReturnRequested, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusReturned.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
	assert.False(t, StatusReturnRequested.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("teleported")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
