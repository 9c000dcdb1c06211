//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
package validator

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
)

// Calculator computes required difficulty and checks block hashes.
type Calculator interface {
	NextWorkRequired(last *chain.Node, header *chain.Header, proofOfStake bool) uint32
	ValidateProofOfWork(hash chainhash.Hash, bits uint32, proofType chain.ProofType) error
}

// Metrics captures validation outcomes.
type Metrics interface {
	ObserveHeader(proofType string, err error, started time.Time)
}
