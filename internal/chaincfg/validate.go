package chaincfg

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/holiman/uint256"
)

// minTargetSpacing keeps (interval+1)*spacing/16 above zero in the
// exponential EMA era.
const minTargetSpacing = 16

var nonZeroTarget = validation.By(func(value interface{}) error {
	t, ok := value.(*uint256.Int)
	if !ok {
		return errors.New("must be a 256-bit target")
	}
	if t == nil || t.IsZero() {
		return errors.New("must be non-zero")
	}
	return nil
})

// Validate checks that the parameters can drive every retarget era without
// dividing by zero.
func (p *Params) Validate() error {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Net, validation.Required),
		validation.Field(&p.PowLimit, validation.Required, nonZeroTarget),
		validation.Field(&p.PosLimit, validation.Required, nonZeroTarget),
		validation.Field(&p.QIP9PosLimit, validation.Required, nonZeroTarget),
		validation.Field(&p.PowTargetTimespan, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.PowTargetSpacing, validation.Required, validation.Min(int64(minTargetSpacing))),
		validation.Field(&p.PosTargetTimespan, validation.Required, validation.Min(p.PowTargetSpacing)),
		validation.Field(&p.PosTargetTimespanV2, validation.When(p.PosTargetTimespanV2 != 0, validation.Min(p.PowTargetSpacing))),
		validation.Field(&p.UTXOFixTimespan, validation.Min(int64(0))),
		validation.Field(&p.MinDiffReductionTime, validation.Min(int64(0))),
	)
	if err != nil {
		return fmt.Errorf("validate %s params: %w", p.Net, err)
	}
	return nil
}
