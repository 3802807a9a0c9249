package ordercodec_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mintbay-network/mintbay-trader/pkg/ordercodec"
)

func TestAddressRoundTrip(t *testing.T) {
	t.Parallel()

	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	address := ordercodec.EncodeAddress(pubkey)
	require.Len(t, address, 58)

	decoded, err := ordercodec.DecodeAddress(address)
	require.NoError(t, err)
	require.Equal(t, pubkey, decoded)
}

func TestDecodeInvalidAddress(t *testing.T) {
	t.Parallel()

	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	address := ordercodec.EncodeAddress(pubkey)

	// flip a character so the checksum no longer matches
	corrupted := []byte(address)
	if corrupted[0] == 'A' {
		corrupted[0] = 'B'
	} else {
		corrupted[0] = 'A'
	}

	tests := []struct {
		name    string
		address string
	}{
		{name: "empty", address: ""},
		{name: "too_short", address: address[:30]},
		{name: "bad_checksum", address: string(corrupted)},
		{name: "bad_encoding", address: "0" + address[1:]},
	}

	for i := range tests {
		tt := tests[i]

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ordercodec.DecodeAddress(tt.address)
			require.ErrorIs(t, err, ordercodec.ErrInvalidAddress)
		})
	}
}
