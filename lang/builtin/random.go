package builtin

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/ardnew/splice/lang"
)

// randint returns a function yielding a uniform integer between its two
// evaluated bounds, inclusive. The bounds may be given in either order.
// A bound that is not an integer yields NaN.
func randint(src *rand.Rand) lang.Function {
	var mu sync.Mutex

	return lang.Func(lang.Exactly(2), func(ctx *lang.Context, args []*lang.Node) (lang.Result, error) {
		var bounds [2]int64

		for i := range bounds {
			res, err := ctx.EvaluateArg(args, i)
			if err != nil || res.Halts() {
				return res, err
			}

			n, ok := lang.String(res.String()).Int()
			if !ok {
				return lang.Success(lang.Float(math.NaN())), nil
			}

			bounds[i] = n
		}

		lo, hi := min(bounds[0], bounds[1]), max(bounds[0], bounds[1])
		if lo == hi {
			return lang.Success(lang.Int(lo)), nil
		}

		span := uint64(hi) - uint64(lo)

		mu.Lock()
		var off uint64
		if span == math.MaxUint64 {
			off = src.Uint64()
		} else {
			off = src.Uint64N(span + 1)
		}
		mu.Unlock()

		return lang.Success(lang.Int(lo + int64(off))), nil
	})
}
