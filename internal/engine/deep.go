package engine

import (
	"context"
	"math/rand"

	"github.com/millworks/cutlist/internal/model"
)

// DeepBudget bounds the number of candidate orderings the deep strategy
// decodes per material. It is a tunable, not a guarantee of optimality; the
// host may additionally cancel the context and take the best found so far.
const DeepBudget = 400

// deepSeed fixes the search's random source so identical inputs always
// explore identical candidates and the result stays reproducible.
const deepSeed = 42

// packDeep searches over part orderings and rotation preferences, decoding
// each candidate through the offcut packing primitive and keeping the one
// with the fewest sheets (ties keep the earlier candidate, which makes the
// search deterministic). The first candidate is the plain greedy order, so
// the result is never worse than the offcut strategy. Between decodes the
// context is polled; on cancellation the best candidate so far is returned.
func packDeep(ctx context.Context, insts []instance, board model.BoardMaterial, kerf float64, budget int) ([]model.SheetLayout, error) {
	if budget <= 0 {
		budget = DeepBudget
	}

	best, err := packMaterial(insts, board, kerf, true)
	if err != nil {
		return nil, err
	}
	if len(best) <= 1 || len(insts) < 2 {
		// One sheet cannot be beaten, and a single part has no orderings.
		return best, nil
	}

	rng := rand.New(rand.NewSource(deepSeed))
	current := make([]instance, len(insts))
	copy(current, insts)

	for iter := 0; iter < budget; iter++ {
		select {
		case <-ctx.Done():
			return best, nil
		default:
		}

		candidate := mutateOrder(rng, current)
		sheets, err := packMaterial(candidate, board, kerf, true)
		if err != nil {
			return nil, err
		}

		if len(sheets) < len(best) {
			best = sheets
			current = candidate
			if len(best) == 1 {
				break
			}
		}
	}

	return best, nil
}

// mutateOrder derives a neighboring candidate: swap two positions, sometimes
// reverse a short run, sometimes flip a rotation preference of a part whose
// grain allows it. The input is not modified.
func mutateOrder(rng *rand.Rand, insts []instance) []instance {
	out := make([]instance, len(insts))
	copy(out, insts)
	n := len(out)

	i, j := rng.Intn(n), rng.Intn(n)
	out[i], out[j] = out[j], out[i]

	if rng.Float64() < 0.3 {
		a, b := rng.Intn(n), rng.Intn(n)
		if a > b {
			a, b = b, a
		}
		for a < b {
			out[a], out[b] = out[b], out[a]
			a++
			b--
		}
	}

	if rng.Float64() < 0.5 {
		k := rng.Intn(n)
		if !out[k].part.GrainLocked {
			out[k].preferRotated = !out[k].preferRotated
		}
	}

	return out
}
