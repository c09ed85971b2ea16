package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/rickgao/oligopoly/internal/model"
)

const reportDigits = 6

// writeReport prints a human-readable summary of run.
func writeReport(w io.Writer, run model.Run) error {
	outside := "no"
	if run.OutsideOption {
		outside = "yes"
	}

	fmt.Fprintf(w, "market:         %s\n", run.Name)
	fmt.Fprintf(w, "run:            %s\n", run.ID)
	fmt.Fprintf(w, "outside option: %s\n", outside)
	fmt.Fprintf(w, "status:         %s after %s rounds (error %s, tolerance %s)\n",
		run.Status,
		humanize.Comma(int64(run.Iterations)),
		humanize.FtoaWithDigits(run.FinalError, reportDigits),
		humanize.FtoaWithDigits(run.Tolerance, reportDigits),
	)
	fmt.Fprintf(w, "duration:       %s ms\n\n", humanize.Comma(run.DurationMS))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "firm\tproducts\tcost\tprice\tdemand\tprofit\tvalues\t")
	for _, f := range run.Firms {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t\n",
			f.Index,
			f.Products,
			humanize.FtoaWithDigits(f.MarginalCost, reportDigits),
			humanize.FtoaWithDigits(f.Price, reportDigits),
			humanize.FtoaWithDigits(f.Demand, reportDigits),
			humanize.FtoaWithDigits(f.Profit, reportDigits),
			f.Distribution,
		)
	}
	return tw.Flush()
}

type jsonFirm struct {
	Index        int     `json:"index"`
	Products     int     `json:"products"`
	MarginalCost float64 `json:"marginal_cost"`
	Distribution string  `json:"distribution"`
	Price        float64 `json:"price"`
	Demand       float64 `json:"demand"`
	Profit       float64 `json:"profit"`
}

type jsonRun struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CreatedAt     int64      `json:"created_at"`
	OutsideOption bool       `json:"outside_option"`
	Status        string     `json:"status"`
	Iterations    int        `json:"iterations"`
	FinalError    float64    `json:"final_error"`
	Tolerance     float64    `json:"tolerance"`
	MaxIter       int        `json:"max_iter"`
	DurationMS    int64      `json:"duration_ms"`
	Firms         []jsonFirm `json:"firms"`
}

// writeJSON prints run as an indented JSON document.
func writeJSON(w io.Writer, run model.Run) error {
	out := jsonRun{
		ID:            run.ID.String(),
		Name:          run.Name,
		CreatedAt:     run.CreatedAt,
		OutsideOption: run.OutsideOption,
		Status:        run.Status,
		Iterations:    run.Iterations,
		FinalError:    run.FinalError,
		Tolerance:     run.Tolerance,
		MaxIter:       run.MaxIter,
		DurationMS:    run.DurationMS,
		Firms:         make([]jsonFirm, len(run.Firms)),
	}
	for i, f := range run.Firms {
		out.Firms[i] = jsonFirm(f)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
