package ordercodec

import (
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/base32"
	"errors"
)

const (
	addressLen  = 58
	checksumLen = 4
)

var (
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not valid")

	base32Encoder = base32.StdEncoding.WithPadding(base32.NoPadding)
)

// EncodeAddress returns the address of the given ed25519 public key, that is
// the base32 encoding of the key followed by the last 4 bytes of its
// sha512/256 digest.
func EncodeAddress(pubkey ed25519.PublicKey) string {
	checksum := addressChecksum(pubkey)
	return base32Encoder.EncodeToString(append([]byte(pubkey), checksum...))
}

// DecodeAddress decodes and checksum-validates an address, returning the
// ed25519 public key it encodes.
func DecodeAddress(address string) (ed25519.PublicKey, error) {
	if len(address) != addressLen {
		return nil, ErrInvalidAddress
	}
	decoded, err := base32Encoder.DecodeString(address)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if len(decoded) != ed25519.PublicKeySize+checksumLen {
		return nil, ErrInvalidAddress
	}

	pubkey := ed25519.PublicKey(decoded[:ed25519.PublicKeySize])
	checksum := decoded[ed25519.PublicKeySize:]
	expected := addressChecksum(pubkey)
	for i := range checksum {
		if checksum[i] != expected[i] {
			return nil, ErrInvalidAddress
		}
	}
	return pubkey, nil
}

func addressChecksum(pubkey ed25519.PublicKey) []byte {
	digest := sha512.Sum512_256(pubkey)
	return digest[len(digest)-checksumLen:]
}
