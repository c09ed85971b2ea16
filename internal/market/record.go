package market

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/oligopoly/internal/model"
)

// Record converts an outcome of this market into a persistable run.
func (m *Market) Record(name string, out Outcome) model.Run {
	status := model.StatusConverged
	if out.State != Converged {
		status = model.StatusMaxIterExceeded
	}

	run := model.Run{
		ID:            uuid.New(),
		Name:          name,
		CreatedAt:     time.Now().UnixMicro(),
		OutsideOption: m.cfg.OutsideOption,
		Status:        status,
		Iterations:    out.Iterations,
		FinalError:    out.Error,
		Tolerance:     m.cfg.Tolerance,
		MaxIter:       m.cfg.MaxIter,
		DurationMS:    out.Duration.Milliseconds(),
		Firms:         make([]model.FirmResult, len(m.firms)),
	}

	for n, f := range m.firms {
		run.Firms[n] = model.FirmResult{
			Index:        n,
			Products:     f.Products(),
			MarginalCost: f.MarginalCost(),
			Distribution: fmt.Sprint(f.Distribution()),
		}
		if n < len(out.Prices) {
			run.Firms[n].Price = out.Prices[n]
		}
		if n < len(out.Demands) {
			run.Firms[n].Demand = out.Demands[n]
		}
		if n < len(out.Profits) {
			run.Firms[n].Profit = out.Profits[n]
		}
	}
	return run
}
