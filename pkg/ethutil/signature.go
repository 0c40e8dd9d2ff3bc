package ethutil

import (
	"errors"
	"regexp"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

var txHashRegex = regexp.MustCompile("^0x[0-9a-fA-F]{64}$")

// RecoverPersonalSign returns the address which signed message with
// personal_sign (EIP-191).
func RecoverPersonalSign(message, hexSignature string) (common.Address, error) {
	signature, err := hexutil.Decode(hexSignature)
	if err != nil {
		return common.Address{}, err
	}

	if len(signature) != ethcrypto.SignatureLength {
		return common.Address{}, errors.New("invalid signature length")
	}

	if signature[ethcrypto.RecoveryIDOffset] == 27 || signature[ethcrypto.RecoveryIDOffset] == 28 {
		signature[ethcrypto.RecoveryIDOffset] -= 27 // Transform yellow paper V from 27/28 to 0/1
	}

	recovered, err := ethcrypto.SigToPub(accounts.TextHash([]byte(message)), signature)
	if err != nil {
		return common.Address{}, err
	}

	return ethcrypto.PubkeyToAddress(*recovered), nil
}

func VerifyPersonalSign(message, hexSignature, address string) error {
	recovered, err := RecoverPersonalSign(message, hexSignature)
	if err != nil {
		return err
	}

	if recovered != common.HexToAddress(address) {
		return ErrAddressMismatch
	}

	return nil
}

// NormalizeAddress returns the EIP-55 checksummed form of address.
func NormalizeAddress(address string) string {
	return common.HexToAddress(address).Hex()
}

func IsAddress(address string) bool {
	return common.IsHexAddress(address)
}

func IsTxHash(hash string) bool {
	return txHashRegex.MatchString(hash)
}
