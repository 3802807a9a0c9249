// Package ordercodec defines the canonical byte serialization of a sell
// order and the signing scheme applied to it. Any party reconstructing the
// same field values obtains the same bytes, which is what makes the seller
// signature verifiable off-band.
package ordercodec

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"
	"errors"
)

// domainPrefix namespaces order signatures so that a signed order can never
// be replayed as some other kind of signed message.
const domainPrefix = "MBORDER1"

var (
	// ErrNullSignature ...
	ErrNullSignature = errors.New("signature must not be null")
	// ErrInvalidSignature ...
	ErrInvalidSignature = errors.New("signature does not verify against seller address")
)

// Order is the canonical field set of a sell order. Price is the canonical
// decimal string representation, timestamps are unix seconds.
type Order struct {
	Id            string
	MarketplaceId string
	NftId         string
	AssetId       uint64
	Seller        string
	Price         string
	Currency      string
	CreatedAt     int64
	ExpiresAt     int64
}

// Serialize returns the canonical byte form of the given order. The encoding
// is a fixed-order sequence of length-prefixed fields, so it is independent
// of any map or key ordering and deterministic across processes.
func Serialize(o Order) []byte {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(domainPrefix)
	writeString(buf, o.Id)
	writeString(buf, o.MarketplaceId)
	writeString(buf, o.NftId)
	writeUint64(buf, o.AssetId)
	writeString(buf, o.Seller)
	writeString(buf, o.Price)
	writeString(buf, o.Currency)
	writeUint64(buf, uint64(o.CreatedAt))
	writeUint64(buf, uint64(o.ExpiresAt))
	return buf.Bytes()
}

// Sign returns the seller signature over the canonical serialization of the
// given order.
func Sign(o Order, key ed25519.PrivateKey) []byte {
	return ed25519.Sign(key, Serialize(o))
}

// Verify checks the given signature over the canonical serialization of the
// order against the public key encoded in the order's seller address.
func Verify(o Order, sig []byte) error {
	if len(sig) <= 0 {
		return ErrNullSignature
	}
	pubkey, err := DecodeAddress(o.Seller)
	if err != nil {
		return err
	}
	if !ed25519.Verify(pubkey, Serialize(o), sig) {
		return ErrInvalidSignature
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint64(buf, uint64(len(s)))
	buf.WriteString(s)
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
