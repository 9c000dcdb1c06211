package pow

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"go.uber.org/zap"
)

// Calculator binds the retarget and proof functions to one network and logs
// each difficulty transition at debug level.
type Calculator struct {
	params *chaincfg.Params
	logger *zap.Logger
}

func NewCalculator(params *chaincfg.Params, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		params: params,
		logger: logger.Named("pow").With(zap.String("network", string(params.Net))),
	}
}

func (c *Calculator) Params() *chaincfg.Params {
	return c.params
}

func (c *Calculator) NextWorkRequired(last *chain.Node, header *chain.Header, proofOfStake bool) uint32 {
	bits := NextWorkRequired(last, header, c.params, proofOfStake)

	if ce := c.logger.Check(zap.DebugLevel, "next work required"); ce != nil {
		fields := []zap.Field{
			zap.Stringer("proof_type", chain.ProofTypeOf(proofOfStake)),
			zap.String("new_bits", formatBits(bits)),
			zap.Stringer("new_target", decoded(bits)),
		}
		if last != nil {
			fields = append(fields,
				zap.Int32("height", last.Height()+1),
				zap.String("old_bits", formatBits(last.Bits())),
				zap.Stringer("old_target", decoded(last.Bits())),
			)
		}
		ce.Write(fields...)
	}
	return bits
}

func (c *Calculator) ValidateProofOfWork(hash chainhash.Hash, bits uint32, proofType chain.ProofType) error {
	err := ValidateProofOfWork(hash, bits, c.params, proofType)
	if err != nil {
		c.logger.Debug("proof of work rejected",
			zap.Stringer("hash", hash),
			zap.String("bits", formatBits(bits)),
			zap.Stringer("proof_type", proofType),
			zap.Error(err),
		)
	}
	return err
}

func (c *Calculator) CheckProofOfWork(hash chainhash.Hash, bits uint32, proofType chain.ProofType) bool {
	return c.ValidateProofOfWork(hash, bits, proofType) == nil
}
