package config

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip39"
)

// OperatorAddress derives the operator wallet address from a BIP-39 seed
// phrase: the last 20 bytes of keccak256(seed), hex encoded. A missing or
// invalid phrase yields DefaultShieldedAddress.
func OperatorAddress(seedPhrase string) string {
	phrase := strings.Join(strings.Fields(seedPhrase), " ")
	if !bip39.IsMnemonicValid(phrase) {
		return DefaultShieldedAddress
	}
	seed := bip39.NewSeed(phrase, "")
	seedHash := crypto.Keccak256(seed)
	return common.BytesToAddress(seedHash[12:]).Hex()
}

// ContractAddress is the address the contract would get when deployed by
// operator as its first transaction
func ContractAddress(operator string) string {
	deployer := common.BytesToAddress(crypto.Keccak256([]byte(operator))[12:])
	return crypto.CreateAddress(deployer, 0).Hex()
}
