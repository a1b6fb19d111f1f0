// debug_break_even prints old and new regime tax as extra deduction is
// added to a profile, one CSV row per step. It is useful for eyeballing
// where the break-even solver should land.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	calc "github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <profile-file> [step] [max]")
		return
	}

	profile, err := config.NewInputParser().LoadProfile(os.Args[1])
	if err != nil {
		panic(err)
	}

	step := int64(10000)
	limit := int64(500000)
	if len(os.Args) > 2 {
		if step, err = strconv.ParseInt(os.Args[2], 10, 64); err != nil || step <= 0 {
			panic(fmt.Sprintf("invalid step %q", os.Args[2]))
		}
	}
	if len(os.Args) > 3 {
		if limit, err = strconv.ParseInt(os.Args[3], 10, 64); err != nil {
			panic(fmt.Sprintf("invalid max %q", os.Args[3]))
		}
	}

	engine := calc.NewTaxEvaluator()
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	_ = w.Write([]string{"Extra80C", "OldTaxable", "OldTax", "NewTax", "Best"})
	for extra := int64(0); extra <= limit; extra += step {
		p := *profile
		p.Deduction80C = p.Deduction80C.Add(decimal.NewFromInt(extra))
		d := engine.Compute(p)
		_ = w.Write([]string{
			strconv.FormatInt(extra, 10),
			d.OldRegime.TaxableIncome.String(),
			d.OldRegime.TaxPayable.String(),
			d.NewRegime.TaxPayable.String(),
			string(d.Best),
		})
		if d.Best == domain.RegimeOld {
			break
		}
	}
}
