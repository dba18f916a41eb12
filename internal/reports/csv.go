package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"Fecha", "Tipo", "Categoría", "Descripción", "Método", "Monto"}

// WriteCSV streams the transactions as a spreadsheet-friendly export.
// Expense amounts are written negated so a column sum yields the balance.
func WriteCSV(w io.Writer, transactions []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, tx := range transactions {
		amount := tx.Amount
		label := "Ingreso"
		if tx.Type == TypeExpense {
			amount = -amount
			label = "Egreso"
		}
		record := []string{
			tx.Date.Format("2006-01-02"),
			label,
			tx.Category,
			tx.Description,
			tx.Method,
			strconv.FormatFloat(amount, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
