package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	date := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		{Type: TypeIncome, Date: date, Category: "Reparación", Description: "Recibo r1", Method: "efectivo", Amount: 100},
		{Type: TypeIncome, Date: date, Category: "Venta", Description: "Recibo r2", Method: "tarjeta", Amount: 200},
		{Type: TypeExpense, Date: date, Category: "Repuestos", Description: "Pantallas", Method: "efectivo", Amount: 30},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, transactions))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(transactions)+1)
	require.Equal(t, []string{"Fecha", "Tipo", "Categoría", "Descripción", "Método", "Monto"}, rows[0])

	var total float64
	for _, row := range rows[1:] {
		amount, err := strconv.ParseFloat(row[5], 64)
		require.NoError(t, err)
		total += amount
	}
	require.InDelta(t, 270.0, total, 1e-9)
}

func TestWriteCSVNegatesExpenses(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Transaction{
		{Type: TypeExpense, Date: time.Now(), Category: "Alquiler", Amount: 500},
	})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, "Egreso", rows[1][1])
	require.Equal(t, "-500.00", rows[1][5])
}
