package firm

import (
	"fmt"
	"math"
)

// BestResponseError describes a failed profit maximization.
type BestResponseError struct {
	StartingPrice    float64
	CompetitorPrices []float64
	Err              error
}

func (e *BestResponseError) Error() string {
	return fmt.Sprintf("best response not found (starting price %g, competitor prices %v): %v; consider a different starting price",
		e.StartingPrice, e.CompetitorPrices, e.Err)
}

// Unwrap returns the underlying optimizer error.
func (e *BestResponseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrBestResponseNotFound.
func (e *BestResponseError) Is(target error) bool {
	return target == ErrBestResponseNotFound
}

// BestResponse returns the price maximizing the firm's profit given its
// competitors' prices. The search is local and starts at StartingPrice.
func (f *Firm) BestResponse(competitors []*Firm, prices []float64) (float64, error) {
	if err := checkCompetitors(competitors, prices); err != nil {
		return math.NaN(), err
	}

	objective := func(p float64) float64 {
		return -f.profit(p, competitors, prices)
	}

	price, err := f.minimizer.Minimize(objective, f.startingPrice)
	if err != nil {
		return math.NaN(), &BestResponseError{
			StartingPrice:    f.startingPrice,
			CompetitorPrices: append([]float64(nil), prices...),
			Err:              err,
		}
	}
	return price, nil
}
