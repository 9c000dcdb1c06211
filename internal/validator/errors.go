package validator

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	ErrBadDifficulty = errors.New("header bits do not match required difficulty")
	ErrOutOfRange    = errors.New("height range outside the best chain")
)

// ConsensusError reports the header that broke a consensus rule.
type ConsensusError struct {
	Height int32
	Hash   chainhash.Hash
	Err    error
}

func (e *ConsensusError) Error() string {
	return fmt.Sprintf("header %d (%s): %v", e.Height, e.Hash, e.Err)
}

func (e *ConsensusError) Unwrap() error {
	return e.Err
}
