package zmq

import (
	"errors"
	"strings"
)

var (
	// ErrZ85BadLength reports input whose length is not a multiple of 4 for
	// encoding or 5 for decoding.
	ErrZ85BadLength = errors.New("zmq: z85 input has invalid length")
	// ErrZ85Nul reports a string with an interior NUL byte.
	ErrZ85Nul = errors.New("zmq: z85 input contains NUL")
	// ErrZ85Invalid reports characters outside the Z85 alphabet.
	ErrZ85Invalid = errors.New("zmq: z85 input is not valid")
)

// Z85Encode encodes data in ZeroMQ's Base-85 text form. len(data) must be a
// multiple of 4.
func Z85Encode(data []byte) (string, error) {
	if len(data)%4 != 0 {
		return "", ErrZ85BadLength
	}
	encoded, ok := ffiZ85Encode(data)
	if !ok {
		return "", ErrZ85BadLength
	}
	return encoded, nil
}

// Z85Decode decodes Z85 text. len(s) must be a multiple of 5.
func Z85Decode(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrZ85Nul
	}
	if len(s)%5 != 0 {
		return nil, ErrZ85BadLength
	}
	if s == "" {
		return []byte{}, nil
	}
	decoded, ok := ffiZ85Decode(s)
	if !ok {
		return nil, ErrZ85Invalid
	}
	return decoded, nil
}

// CurveKeyPair is a CURVE public/secret key pair in binary form.
type CurveKeyPair struct {
	PublicKey []byte
	SecretKey []byte
}

// NewCurveKeyPair generates a key pair. It fails with ENOTSUP when libzmq was
// built without CURVE.
func NewCurveKeyPair() (*CurveKeyPair, error) {
	public, secret, code := ffiCurveKeypair()
	if err := checkResult(code); err != nil {
		return nil, err
	}
	publicKey, err := Z85Decode(public)
	if err != nil {
		return nil, err
	}
	secretKey, err := Z85Decode(secret)
	if err != nil {
		return nil, err
	}
	return &CurveKeyPair{PublicKey: publicKey, SecretKey: secretKey}, nil
}
