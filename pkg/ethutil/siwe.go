package ethutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const siwePreamble = " wants you to sign in with your Ethereum account:"

// SIWEMessage holds the fields of an EIP-4361 sign-in message.
type SIWEMessage struct {
	Domain    string
	Address   common.Address
	Statement string
	URI       string
	Version   string
	ChainID   string
	Nonce     string
	RequestID string

	IssuedAt       time.Time
	ExpirationTime *time.Time
	NotBefore      *time.Time
}

var (
	ErrInvalidMessage  = errors.New("invalid siwe message")
	ErrAddressMismatch = errors.New("address mismatch")
	ErrNonceMismatch   = errors.New("nonce mismatch")
	ErrExpired         = errors.New("message expired")
	ErrNotYetValid     = errors.New("message not yet valid")
)

func ParseSIWEMessage(raw string) (*SIWEMessage, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	if len(lines) < 2 || !strings.HasSuffix(lines[0], siwePreamble) {
		return nil, ErrInvalidMessage
	}

	address := strings.TrimSpace(lines[1])
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: bad address %q", ErrInvalidMessage, address)
	}

	msg := &SIWEMessage{
		Domain:  strings.TrimSuffix(lines[0], siwePreamble),
		Address: common.HexToAddress(address),
	}

	var statement []string
	for _, line := range lines[2:] {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			if line == "Resources:" || strings.HasPrefix(line, "- ") {
				continue
			}

			if line != "" {
				statement = append(statement, line)
			}
			continue
		}

		var err error
		switch key {
		case "URI":
			msg.URI = value
		case "Version":
			msg.Version = value
		case "Chain ID":
			msg.ChainID = value
		case "Nonce":
			msg.Nonce = value
		case "Request ID":
			msg.RequestID = value
		case "Issued At":
			msg.IssuedAt, err = time.Parse(time.RFC3339, value)
		case "Expiration Time":
			msg.ExpirationTime, err = parseTimePtr(value)
		case "Not Before":
			msg.NotBefore, err = parseTimePtr(value)
		default:
			statement = append(statement, line)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: bad %s: %v", ErrInvalidMessage, key, err)
		}
	}

	msg.Statement = strings.Join(statement, "\n")
	if msg.Nonce == "" {
		return nil, fmt.Errorf("%w: missing nonce", ErrInvalidMessage)
	}

	return msg, nil
}

// Validate checks the message against the expected signer and nonce, and
// its validity window against now.
func (m *SIWEMessage) Validate(address, nonce string, now time.Time) error {
	if !common.IsHexAddress(address) || m.Address != common.HexToAddress(address) {
		return ErrAddressMismatch
	}

	if m.Nonce != nonce {
		return ErrNonceMismatch
	}

	if m.ExpirationTime != nil && !now.Before(*m.ExpirationTime) {
		return ErrExpired
	}

	if m.NotBefore != nil && now.Before(*m.NotBefore) {
		return ErrNotYetValid
	}

	return nil
}

func parseTimePtr(value string) (*time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
