package chaincfg

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/goodnatureofminers/htmlcoin-retarget/internal/model"
	"github.com/holiman/uint256"
)

// Overrides are optional parameter replacements for private and development
// networks. Nil fields keep the network default.
type Overrides struct {
	PowLimit     *string `toml:"pow_limit"`
	PosLimit     *string `toml:"pos_limit"`
	QIP9PosLimit *string `toml:"qip9_pos_limit"`

	PowTargetTimespan   *int64 `toml:"pow_target_timespan"`
	PowTargetSpacing    *int64 `toml:"pow_target_spacing"`
	PosTargetTimespan   *int64 `toml:"pos_target_timespan"`
	PosTargetTimespanV2 *int64 `toml:"pos_target_timespan_v2"`

	DiffAdjustChangeHeight *int32  `toml:"diff_adjust_change_height"`
	DiffDampingHeight      *int32  `toml:"diff_damping_height"`
	DiffChangeHeight       *uint32 `toml:"diff_change_height"`
	QIP9Height             *int32  `toml:"qip9_height"`
	UTXOFixHeight          *int32  `toml:"utxo_fix_height"`
	UTXOFixTimespan        *int64  `toml:"utxo_fix_timespan"`

	PowAllowMinDifficultyBlocks *bool  `toml:"pow_allow_min_difficulty_blocks"`
	MinDiffReductionTime        *int64 `toml:"min_diff_reduction_time"`
	PowNoRetargeting            *bool  `toml:"pow_no_retargeting"`
	PosNoRetargeting            *bool  `toml:"pos_no_retargeting"`
}

// Load returns the validated parameters of net with the overrides file at
// path applied. An empty path returns the network defaults.
func Load(net model.Network, path string) (*Params, error) {
	params, err := ParamsForNetwork(net)
	if err != nil {
		return nil, err
	}
	return load(params, path)
}

func load(params *Params, path string) (*Params, error) {
	if path == "" {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		return params, nil
	}

	o, err := LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	return params.WithOverrides(o)
}

// LoadOverrides reads overrides from a TOML file.
func LoadOverrides(path string) (Overrides, error) {
	var o Overrides
	md, err := toml.DecodeFile(path, &o)
	if err != nil {
		return Overrides{}, fmt.Errorf("decode overrides file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Overrides{}, fmt.Errorf("decode overrides file %s: unknown keys %v", path, undecoded)
	}
	return o, nil
}

// LoadOverridesString reads overrides from TOML text.
func LoadOverridesString(data string) (Overrides, error) {
	var o Overrides
	md, err := toml.Decode(data, &o)
	if err != nil {
		return Overrides{}, fmt.Errorf("decode overrides: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Overrides{}, fmt.Errorf("decode overrides: unknown keys %v", undecoded)
	}
	return o, nil
}

// WithOverrides returns a validated copy of p with o applied.
func (p *Params) WithOverrides(o Overrides) (*Params, error) {
	c := p.Clone()

	if err := setTarget(&c.PowLimit, o.PowLimit, "pow_limit"); err != nil {
		return nil, err
	}
	if err := setTarget(&c.PosLimit, o.PosLimit, "pos_limit"); err != nil {
		return nil, err
	}
	if err := setTarget(&c.QIP9PosLimit, o.QIP9PosLimit, "qip9_pos_limit"); err != nil {
		return nil, err
	}

	set(&c.PowTargetTimespan, o.PowTargetTimespan)
	set(&c.PowTargetSpacing, o.PowTargetSpacing)
	set(&c.PosTargetTimespan, o.PosTargetTimespan)
	set(&c.PosTargetTimespanV2, o.PosTargetTimespanV2)
	set(&c.DiffAdjustChangeHeight, o.DiffAdjustChangeHeight)
	set(&c.DiffDampingHeight, o.DiffDampingHeight)
	set(&c.DiffChangeHeight, o.DiffChangeHeight)
	set(&c.QIP9Height, o.QIP9Height)
	set(&c.UTXOFixHeight, o.UTXOFixHeight)
	set(&c.UTXOFixTimespan, o.UTXOFixTimespan)
	set(&c.PowAllowMinDifficultyBlocks, o.PowAllowMinDifficultyBlocks)
	set(&c.MinDiffReductionTime, o.MinDiffReductionTime)
	set(&c.PowNoRetargeting, o.PowNoRetargeting)
	set(&c.PosNoRetargeting, o.PosNoRetargeting)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setTarget(dst **uint256.Int, src *string, key string) error {
	if src == nil {
		return nil
	}
	t, err := ParseTarget(*src)
	if err != nil {
		return fmt.Errorf("override %s: %w", key, err)
	}
	*dst = t
	return nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
