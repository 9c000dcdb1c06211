// Package chaincfg defines the consensus parameters of the HTMLCOIN networks.
package chaincfg

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/holiman/uint256"
)

// Unscheduled marks a fork height that never activates.
const Unscheduled int32 = math.MaxInt32

// Params holds the retarget and proof rules of one network. Values returned
// by ParamsForNetwork are private copies and are not modified afterwards.
type Params struct {
	Net model.Network

	GenesisHash chainhash.Hash
	GenesisBits uint32
	GenesisTime int64

	PowLimit     *uint256.Int
	PosLimit     *uint256.Int
	QIP9PosLimit *uint256.Int

	// PowTargetTimespan is the per-block timespan of the legacy windowed
	// algorithm.
	PowTargetTimespan int64
	// PowTargetSpacing is the block spacing of the moving average eras.
	PowTargetSpacing    int64
	PosTargetTimespan   int64
	PosTargetTimespanV2 int64

	DiffAdjustChangeHeight int32
	DiffDampingHeight      int32
	DiffChangeHeight       uint32
	QIP9Height             int32

	UTXOFixHeight   int32
	UTXOFixTimespan int64

	PowAllowMinDifficultyBlocks bool
	MinDiffReductionTime        int64
	PowNoRetargeting            bool
	PosNoRetargeting            bool
}

// ParamsForNetwork returns a fresh copy of the parameters of net.
func ParamsForNetwork(net model.Network) (*Params, error) {
	switch net {
	case model.Mainnet:
		return mainNetParams(), nil
	case model.Testnet:
		return testNetParams(), nil
	case model.Regtest:
		return regTestParams(), nil
	case model.Unittest:
		return unitTestParams(), nil
	default:
		return nil, fmt.Errorf("unknown network %q", net)
	}
}

// TargetLimit returns the easiest target allowed at height for the given
// proof type.
func (p *Params) TargetLimit(height int32, proofOfStake bool) *uint256.Int {
	if !proofOfStake {
		return new(uint256.Int).Set(p.PowLimit)
	}
	if height < p.QIP9Height {
		return new(uint256.Int).Set(p.PosLimit)
	}
	return new(uint256.Int).Set(p.QIP9PosLimit)
}

// ProofLimit returns the ceiling a block hash target is checked against when
// the block height is not known. Proof-of-stake blocks get the looser of the
// two stake limits.
func (p *Params) ProofLimit(proofType chain.ProofType) *uint256.Int {
	if proofType != chain.ProofOfStake {
		return new(uint256.Int).Set(p.PowLimit)
	}
	if p.PosLimit.Gt(p.QIP9PosLimit) {
		return new(uint256.Int).Set(p.PosLimit)
	}
	return new(uint256.Int).Set(p.QIP9PosLimit)
}

// DifficultyAdjustmentInterval returns the EMA window, in blocks, at height.
func (p *Params) DifficultyAdjustmentInterval(height int32) int64 {
	timespan := p.PosTargetTimespan
	if p.PosTargetTimespanV2 != 0 && height >= p.QIP9Height {
		timespan = p.PosTargetTimespanV2
	}
	return timespan / p.PowTargetSpacing
}

func (p *Params) NoRetargeting(proofOfStake bool) bool {
	if proofOfStake {
		return p.PosNoRetargeting
	}
	return p.PowNoRetargeting
}

// LegacyTimespan returns the windowed algorithm timespan for a candidate at
// height.
func (p *Params) LegacyTimespan(height int32) int64 {
	if p.UTXOFixTimespan != 0 && height >= p.UTXOFixHeight {
		return p.UTXOFixTimespan
	}
	return p.PowTargetTimespan
}

// Clone returns a deep copy of p.
func (p *Params) Clone() *Params {
	c := *p
	c.PowLimit = cloneTarget(p.PowLimit)
	c.PosLimit = cloneTarget(p.PosLimit)
	c.QIP9PosLimit = cloneTarget(p.QIP9PosLimit)
	return &c
}

func cloneTarget(v *uint256.Int) *uint256.Int {
	if v == nil {
		return nil
	}
	return new(uint256.Int).Set(v)
}

// ParseTarget parses a big-endian hex target, with or without 0x prefix.
func ParseTarget(value string) (*uint256.Int, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	n, ok := new(big.Int).SetString(s, 16)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("parse target %q: invalid hex", value)
	}
	t, overflow := uint256.FromBig(n)
	if overflow {
		return nil, fmt.Errorf("parse target %q: exceeds 256 bits", value)
	}
	return t, nil
}

func mustTarget(value string) *uint256.Int {
	t, err := ParseTarget(value)
	if err != nil {
		panic(err)
	}
	return t
}

func mustHash(value string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(value)
	if err != nil {
		panic(fmt.Sprintf("parse genesis hash %q: %v", value, err))
	}
	return *h
}
