package solana

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Seed tags for derived record addresses. One address per (tag, parents)
// tuple means every record is locatable without a secondary index.
const (
	PlatformSeed    = "platform"
	MemeSeed        = "meme"
	BackingSeed     = "backing"
	CurveSeed       = "curve"
	GenesisPoolSeed = "genesis_pool"
	VaultSeed       = "vault"
	CurveVaultSeed  = "curve_vault"
	MintSeed        = "mint"
)

// DeriveAddress hashes the seed parts into a 32-byte key and renders it as a
// base58 address. Deterministic: same seeds, same address, any process.
func DeriveAddress(seeds ...[]byte) string {
	h := sha256.New()
	for _, seed := range seeds {
		// Length-prefix each part so ("ab","c") and ("a","bc") differ.
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(seed)))
		h.Write(l[:])
		h.Write(seed)
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return solana.PublicKeyFromBytes(key[:]).String()
}

func PlatformAddress() string {
	return DeriveAddress([]byte(PlatformSeed))
}

func MemeAddress(index uint64) string {
	var idx [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)
	return DeriveAddress([]byte(MemeSeed), idx[:])
}

func BackingAddress(memeAddress, backer string) string {
	return DeriveAddress([]byte(BackingSeed), []byte(memeAddress), []byte(backer))
}

func CurveAddress(memeAddress string) string {
	return DeriveAddress([]byte(CurveSeed), []byte(memeAddress))
}

func GenesisPoolAddress(memeAddress string) string {
	return DeriveAddress([]byte(GenesisPoolSeed), []byte(memeAddress))
}

// VaultAddress is the meme's backing escrow.
func VaultAddress(memeAddress string) string {
	return DeriveAddress([]byte(VaultSeed), []byte(memeAddress))
}

// CurveVaultAddress is the curve's SOL escrow.
func CurveVaultAddress(memeAddress string) string {
	return DeriveAddress([]byte(CurveVaultSeed), []byte(memeAddress))
}

func MintAddress(memeAddress string) string {
	return DeriveAddress([]byte(MintSeed), []byte(memeAddress))
}

// ValidAddress reports whether s parses as a base58 public key.
func ValidAddress(s string) bool {
	_, err := solana.PublicKeyFromBase58(s)
	return err == nil
}
