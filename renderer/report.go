package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/drip"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders a simulation report to markdown.
func ReportMarkdown(r *drip.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s Dividend Reinvestment", r.Symbol))
	doc.PlainText(fmt.Sprintf("Invested %s on %s, valued on %s.", r.M(r.Investment), r.From, r.To))

	doc.H2("Summary")
	gains := fmt.Sprintf("%s (%s)", r.M(r.CapitalGains()).SignedString(), r.CapitalGainsPercent().SignedString())
	average := "-"
	if avg, ok := r.AverageAnnualReturn(); ok {
		average = avg.SignedString()
	}
	doc.Table(md.TableSet{
		Header: []string{"", "Shares", "Value"},
		Rows: [][]string{
			{"Was", fmt.Sprint(r.InitialShares), r.M(r.InitialTotal()).String()},
			{"Now", fmt.Sprint(r.FinalShares), r.M(r.FinalTotal()).String()},
			{"Capital Appreciation", "", r.M(r.CapitalAppreciation()).SignedString()},
			{"Remainder", "", r.M(r.Buffer).String()},
			{"Capital Gains", "", gains},
			{"Annual Average Return", "", average},
		},
	})

	doc.H2("Cash Flows")
	doc.Table(md.TableSet{
		Header: []string{"Flow", "Amount"},
		Rows: [][]string{
			{"Dividends (after tax)", r.M(r.Dividends).String()},
			{"Withholding Tax", r.M(r.Taxes).String()},
			{"Commissions", r.M(r.Commissions).String()},
			{"Monthly Fees", r.M(r.Fees).String()},
		},
	})

	if len(r.Annual) > 0 {
		doc.H2("Annual Returns")
		rows := make([][]string, 0, len(r.Annual))
		for _, a := range r.Annual {
			rows = append(rows, []string{
				fmt.Sprint(a.Year),
				r.M(a.Start).String(),
				r.M(a.End).String(),
				a.Return().SignedString(),
			})
		}
		doc.Table(md.TableSet{Header: []string{"Year", "Start", "End", "Return"}, Rows: rows})
	}

	return doc.String()
}
