// Package export renders the member list as PDF or XLSX for download.
// Writers only read the rows they are given.
package export

import (
	"strconv"

	"kada-admin/internal/adapters/persistence/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Headers are the column titles of every member list export
var Headers = []string{"No.", "Nama", "No. K/P", "Jantina", "Jawatan", "Gaji", "Status"}

// Row is one member line in an export
type Row struct {
	No       int
	Name     string
	ICNo     string
	Gender   string
	Position string
	Salary   string
	Status   string
}

// Cells returns the row in Headers order
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.No),
		r.Name,
		r.ICNo,
		r.Gender,
		r.Position,
		r.Salary,
		r.Status,
	}
}

var money = message.NewPrinter(language.English)

// Money formats an amount as ringgit with thousands separators
func Money(v float64) string {
	return money.Sprintf("RM %.2f", v)
}

// RowsFromMembers numbers members from 1 in the order given
func RowsFromMembers(members []*models.Member) []Row {
	rows := make([]Row, 0, len(members))
	for i, m := range members {
		rows = append(rows, Row{
			No:       i + 1,
			Name:     m.Name,
			ICNo:     m.ICNo,
			Gender:   m.Gender,
			Position: m.Position,
			Salary:   Money(m.MonthlySalary),
			Status:   string(m.Status),
		})
	}
	return rows
}
