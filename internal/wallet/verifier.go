package wallet

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	solana "github.com/gagliardetto/solana-go"
)

// Ecossistemas de carteira suportados
const (
	Ethereum = "ethereum"
	Solana   = "solana"
)

// Verifier valida endereços de um ecossistema de carteira.
// Trocar de ecossistema é trocar o Verifier, não o pool.
type Verifier interface {
	Ecosystem() string
	ValidAddress(addr string) bool
	// Short abrevia o endereço para exibição
	Short(addr string) string
}

type EthereumVerifier struct{}

func (EthereumVerifier) Ecosystem() string { return Ethereum }

func (EthereumVerifier) ValidAddress(addr string) bool {
	return strings.HasPrefix(addr, "0x") && common.IsHexAddress(addr)
}

func (EthereumVerifier) Short(addr string) string {
	if !common.IsHexAddress(addr) {
		return addr
	}
	hex := strings.ToLower(common.HexToAddress(addr).Hex())
	return hex[:6] + "..."
}

type SolanaVerifier struct{}

func (SolanaVerifier) Ecosystem() string { return Solana }

func (SolanaVerifier) ValidAddress(addr string) bool {
	pk, err := solana.PublicKeyFromBase58(addr)
	return err == nil && !pk.IsZero()
}

func (SolanaVerifier) Short(addr string) string {
	pk, err := solana.PublicKeyFromBase58(addr)
	if err != nil {
		return addr
	}
	return pk.Short(4)
}

// VerifierFor retorna o verifier do ecossistema, ou nil se desconhecido
func VerifierFor(ecosystem string) Verifier {
	switch strings.ToLower(strings.TrimSpace(ecosystem)) {
	case Ethereum, "evm", "base":
		return EthereumVerifier{}
	case Solana:
		return SolanaVerifier{}
	}
	return nil
}
