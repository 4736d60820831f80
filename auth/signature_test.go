package auth

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverAddressRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message := IntegrityMessagePrefix + "deadbeef"
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)

	// go-ethereum emits V as 0/1; recovery must accept that directly.
	recovered, err := RecoverAddress(message, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, wallet, recovered)

	// And the 27/28 wallet convention.
	sig[crypto.RecoveryIDOffset] += 27
	recovered, err = RecoverAddress(message, hexutil.Encode(sig))
	require.NoError(t, err)
	assert.Equal(t, wallet, recovered)
}

func TestRecoverAddressRejectsMalformedInput(t *testing.T) {
	_, err := RecoverAddress("hola", "not-hex")
	assert.Error(t, err)

	_, err = RecoverAddress("hola", "0x1234")
	assert.Error(t, err)
}

func TestVerifySignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte("nonce-123")), key)
	require.NoError(t, err)
	sig[crypto.RecoveryIDOffset] += 27
	encoded := hexutil.Encode(sig)

	assert.True(t, VerifySignature(wallet, encoded, "nonce-123"))
	// Addresses compare case-insensitively.
	assert.True(t, VerifySignature(strings.ToLower(wallet), encoded, "nonce-123"))
	// Different message recovers a different key.
	assert.False(t, VerifySignature(wallet, encoded, "nonce-124"))
	// Different wallet does not match.
	assert.False(t, VerifySignature("0x0000000000000000000000000000000000000001", encoded, "nonce-123"))
}
