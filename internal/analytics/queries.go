// Package analytics defines the fixed analytical queries run against the
// loaded tables and a runner that executes them through a
// storage.Repository.
package analytics

import (
	"fmt"
	"strings"
)

// Query is a named, parameterless analytical statement.
type Query struct {
	Name string
	SQL  string
}

// Queries returns the full report suite for the given fact and dimension
// tables. kind selects dialect variants where SQL differs (SQL Server has no
// LIMIT clause).
func Queries(factTable, dimTable, kind string) []Query {
	fact := strings.TrimSpace(factTable)
	dim := strings.TrimSpace(dimTable)
	if fact == "" {
		fact = "book_sales"
	}
	if dim == "" {
		dim = "dim_books"
	}

	return []Query{
		{
			Name: "total_revenue",
			SQL: fmt.Sprintf(`SELECT ROUND(SUM(revenue), 2) AS total_revenue
FROM %s`, fact),
		},
		{
			Name: "top_selling_books",
			SQL:  topSellingSQL(fact, kind),
		},
		{
			Name: "category_performance",
			SQL: fmt.Sprintf(`SELECT category,
       COUNT(*) AS number_of_books,
       SUM(units_sold) AS total_units,
       ROUND(SUM(revenue), 2) AS total_revenue,
       ROUND(AVG(rating), 2) AS average_rating
FROM %s
GROUP BY category
ORDER BY total_revenue DESC`, fact),
		},
		{
			Name: "daily_sales_trend",
			SQL: fmt.Sprintf(`SELECT date,
       SUM(units_sold) AS daily_sales,
       SUM(revenue) AS daily_revenue,
       ROUND(AVG(price), 2) AS avg_price
FROM %s
GROUP BY date
ORDER BY date ASC`, fact),
		},
		{
			Name: "author_performance",
			SQL: fmt.Sprintf(`SELECT author,
       COUNT(DISTINCT title) AS books_published,
       SUM(units_sold) AS total_copies_sold,
       ROUND(SUM(revenue), 2) AS author_revenue
FROM %s
GROUP BY author
ORDER BY author_revenue DESC`, fact),
		},
		{
			// The bucket expression is repeated in GROUP BY because SQL
			// Server does not allow grouping by a select-list alias.
			Name: "price_segmentation",
			SQL: fmt.Sprintf(`SELECT CASE
         WHEN price < 10 THEN 'Budget (< $10)'
         WHEN price <= 20 THEN 'Mid-range ($10-$20)'
         ELSE 'Premium (> $20)'
       END AS price_segment,
       COUNT(*) AS number_of_books,
       ROUND(AVG(units_sold), 2) AS avg_units_sold,
       ROUND(AVG(rating), 2) AS avg_rating
FROM %s
GROUP BY CASE
         WHEN price < 10 THEN 'Budget (< $10)'
         WHEN price <= 20 THEN 'Mid-range ($10-$20)'
         ELSE 'Premium (> $20)'
       END
ORDER BY avg_units_sold DESC`, fact),
		},
		{
			Name: "fantasy_sales",
			SQL: fmt.Sprintf(`SELECT d.category, s.author, s.date, s.units_sold, s.revenue
FROM %s s
JOIN %s d ON s.title = d.title AND s.author = d.author
WHERE d.category = 'Fantasy'
ORDER BY s.date ASC`, fact, dim),
		},
	}
}

func topSellingSQL(fact, kind string) string {
	if strings.EqualFold(kind, "mssql") {
		return fmt.Sprintf(`SELECT TOP 5 title, SUM(units_sold) AS total_units_sold, ROUND(SUM(revenue), 2) AS total_revenue
FROM %s
GROUP BY title
ORDER BY total_units_sold DESC`, fact)
	}
	return fmt.Sprintf(`SELECT title, SUM(units_sold) AS total_units_sold, ROUND(SUM(revenue), 2) AS total_revenue
FROM %s
GROUP BY title
ORDER BY total_units_sold DESC
LIMIT 5`, fact)
}
