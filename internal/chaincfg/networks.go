package chaincfg

import (
	"math"

	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
)

const (
	mainPowLimit  = "0000ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	mainPosLimit  = "00000000ffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	devLimit      = "7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	unitQIP9Limit = "0000000000001fffffffffffffffffffffffffffffffffffffffffffffffffff"
)

func mainNetParams() *Params {
	return &Params{
		Net:                    model.Mainnet,
		GenesisHash:            mustHash("0000bf23c6424c270a24a17a3db723361c349e0f966d7b55a6bca4bfb2d951b0"),
		GenesisBits:            0x1f00ffff,
		GenesisTime:            1506211200,
		PowLimit:               mustTarget(mainPowLimit),
		PosLimit:               mustTarget(mainPosLimit),
		QIP9PosLimit:           mustTarget(mainPosLimit),
		PowTargetTimespan:      120,
		PowTargetSpacing:       120,
		PosTargetTimespan:      15 * 60,
		DiffAdjustChangeHeight: 7700,
		DiffDampingHeight:      106000,
		DiffChangeHeight:       626000,
		QIP9Height:             Unscheduled,
		UTXOFixHeight:          251000,
	}
}

func testNetParams() *Params {
	return &Params{
		Net:                    model.Testnet,
		GenesisHash:            mustHash("000013694772f8aeb88efeb2829fe5d71fbca3e23d5043baa770726f204f528c"),
		GenesisBits:            0x1f00ffff,
		GenesisTime:            1506212200,
		PowLimit:               mustTarget(mainPowLimit),
		PosLimit:               mustTarget(mainPosLimit),
		QIP9PosLimit:           mustTarget(mainPosLimit),
		PowTargetTimespan:      10,
		PowTargetSpacing:       60,
		PosTargetTimespan:      15 * 60,
		DiffAdjustChangeHeight: 0,
		DiffDampingHeight:      0,
		DiffChangeHeight:       math.MaxUint32,
		QIP9Height:             Unscheduled,
		UTXOFixHeight:          340480,
		UTXOFixTimespan:        60,
	}
}

func regTestParams() *Params {
	return &Params{
		Net:                         model.Regtest,
		GenesisHash:                 mustHash("03c80d2399e1fe481a51e122ac55159a4e5fe635494a7fd368f3e440241fccb2"),
		GenesisBits:                 0x207fffff,
		GenesisTime:                 1506213200,
		PowLimit:                    mustTarget(devLimit),
		PosLimit:                    mustTarget(devLimit),
		QIP9PosLimit:                mustTarget(devLimit),
		PowTargetTimespan:           60,
		PowTargetSpacing:            60,
		PosTargetTimespan:           15 * 60,
		DiffAdjustChangeHeight:      0,
		DiffDampingHeight:           0,
		DiffChangeHeight:            1100,
		QIP9Height:                  Unscheduled,
		UTXOFixHeight:               0,
		PowAllowMinDifficultyBlocks: true,
		PowNoRetargeting:            true,
		PosNoRetargeting:            true,
	}
}

// unitTestParams schedules every era within a few thousand blocks so that
// synthetic chains can reach each of them.
func unitTestParams() *Params {
	p := mainNetParams()
	p.Net = model.Unittest
	p.QIP9PosLimit = mustTarget(unitQIP9Limit)
	p.DiffAdjustChangeHeight = 100
	p.DiffDampingHeight = 500
	p.DiffChangeHeight = 2000
	p.QIP9Height = 3000
	p.UTXOFixHeight = 0
	return p
}
