package schema

import "time"

// Layout is the canonical date layout for the sales input (ISO-8601 dates).
const Layout = "2006-01-02"

// Fact and dimension table column orders. These drive CSV header mapping,
// COPY column lists, and DDL generation, so order matters.
var (
	FactColumns = []string{
		"title", "author", "category", "date",
		"units_sold", "revenue", "price", "rating",
		"month", "day_of_week",
	}
	DimColumns = []string{"title", "author", "category"}
)

// Sale is one sale event (a fact row). month and day_of_week are derived
// from date during transform.
type Sale struct {
	Title     string    `db:"title"`
	Author    string    `db:"author"`
	Category  string    `db:"category"`
	Date      time.Time `db:"date"`
	UnitsSold int64     `db:"units_sold"`
	Revenue   float64   `db:"revenue"`
	Price     float64   `db:"price"`
	Rating    float64   `db:"rating"`
	Month     string    `db:"month"`
	DayOfWeek string    `db:"day_of_week"`
}

// Book is one distinct (title, author) pair (a dimension row). Category is
// the first-seen value among the pair's fact rows.
type Book struct {
	Title    string `db:"title"`
	Author   string `db:"author"`
	Category string `db:"category"`
}

// SalesContract returns the built-in validation contract for the bookstore
// sales input. Range rules follow the data model: units_sold and revenue are
// non-negative, price is strictly positive, rating is within [0, 5].
func SalesContract() Contract {
	zero := 0.0
	five := 5.0
	return Contract{
		Name: "book_sales",
		Fields: []Field{
			{Name: "title", Type: "text", Required: true},
			{Name: "author", Type: "text", Required: true},
			{Name: "category", Type: "text", Required: true},
			{Name: "date", Type: "date", Required: true, Layout: Layout},
			{Name: "units_sold", Type: "int", Required: true, Min: &zero},
			{Name: "revenue", Type: "float", Min: &zero},
			{Name: "price", Type: "float", Required: true, Min: &zero, Exclusive: true},
			{Name: "rating", Type: "float", Required: true, Min: &zero, Max: &five},
			{Name: "month", Type: "text"},
			{Name: "day_of_week", Type: "text"},
		},
	}
}
