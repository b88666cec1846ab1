package builtin

import (
	"math"

	"booketl/pkg/records"
)

// Derive computes the derived sale columns in place, after Coerce has typed
// the inputs:
//
//   - revenue: price * units_sold, rounded to cents, only when the source
//     file did not carry a revenue column (a present value wins).
//   - month / day_of_week: English month and weekday names of the sale date.
//
// Records whose date has not been coerced to a time value are left untouched;
// validation will reject them later when the date is required.
type Derive struct{}

func (Derive) Apply(in []records.Record) []records.Record {
	for _, r := range in {
		if _, ok := r.Float("revenue"); !ok {
			price, okP := r.Float("price")
			units, okU := r.Float("units_sold")
			if okP && okU {
				r["revenue"] = math.Round(price*units*100) / 100
			}
		}
		if d, ok := r.Time("date"); ok {
			r["month"] = d.Month().String()
			r["day_of_week"] = d.Weekday().String()
		}
	}
	return in
}
