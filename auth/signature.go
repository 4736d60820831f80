package auth

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// IntegrityMessagePrefix is the fixed template observers sign over a
// result hash. Wallets sign exactly this prefix plus the hex hash; any
// deviation recovers a different address and the attestation is
// rejected.
const IntegrityMessagePrefix = "Hash de integridad: "

// RecoverAddress returns the address that produced an eth personal_sign
// signature over the given message.
func RecoverAddress(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return "", err
	}
	if len(sig) != crypto.SignatureLength {
		return "", errors.New("signature must be 65 bytes long")
	}

	// Wallets emit V as 27/28; go-ethereum expects 0/1.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", err
	}
	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// VerifySignature reports whether the signature over message recovers
// to the claimed wallet. Addresses compare case-insensitively.
func VerifySignature(wallet, signature, message string) bool {
	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		return false
	}
	return strings.EqualFold(recovered, wallet)
}
