package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chain"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/chaincfg"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/node"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/pow"
	"go.uber.org/zap"
)

type result struct {
	Height    int32  `json:"height"`
	TipHash   string `json:"tip_hash"`
	Time      int64  `json:"time"`
	PowBits   string `json:"pow_bits"`
	PosBits   string `json:"pos_bits"`
	PowTarget string `json:"pow_target"`
	PosTarget string `json:"pos_target"`
}

var errNoHeaders = errors.New("no headers in input")

// nextBits reads verbose getblockheader replies from r, one JSON value per
// line, indexes them and computes the bits required of both proof types on
// top of the best tip. A zero candidateTime means tip time plus the target
// spacing.
func nextBits(r io.Reader, params *chaincfg.Params, candidateTime int64, logger *zap.Logger) (result, error) {
	index := chain.NewIndex()

	dec := json.NewDecoder(r)
	for line := 1; ; line++ {
		var rec rpcclient.HeaderVerboseResult
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return result{}, fmt.Errorf("decode header %d: %w", line, err)
		}

		row, err := node.ConvertHeader(&rec, params.Net)
		if err != nil {
			return result{}, fmt.Errorf("header %d: %w", line, err)
		}
		header, err := row.ChainHeader()
		if err != nil {
			return result{}, fmt.Errorf("header %d: %w", line, err)
		}
		if _, err := index.AddHeader(header); err != nil {
			return result{}, fmt.Errorf("header %d: %w", line, err)
		}
	}

	tip := index.Tip()
	if tip == nil {
		return result{}, errNoHeaders
	}
	if candidateTime == 0 {
		candidateTime = tip.Timestamp() + params.PowTargetSpacing
	}

	calc := pow.NewCalculator(params, logger)
	candidate := &chain.Header{PrevHash: tip.Hash(), Height: tip.Height() + 1, Timestamp: candidateTime}

	powBits := calc.NextWorkRequired(tip, candidate, false)
	posBits := calc.NextWorkRequired(tip, candidate, true)

	return result{
		Height:    candidate.Height,
		TipHash:   tip.Hash().String(),
		Time:      candidateTime,
		PowBits:   fmt.Sprintf("%08x", powBits),
		PosBits:   fmt.Sprintf("%08x", posBits),
		PowTarget: targetHex(powBits),
		PosTarget: targetHex(posBits),
	}, nil
}

func targetHex(bits uint32) string {
	target, _, _ := pow.DecodeCompact(bits)
	return fmt.Sprintf("%064x", target.ToBig())
}
