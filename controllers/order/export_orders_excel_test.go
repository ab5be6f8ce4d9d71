package orderControllers

import (
	"bytes"
	"testing"

	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestBuildOrdersWorkbook(t *testing.T) {
	orders := []models.Order{{
		Ref:           "20250314183005-abc",
		Time:          "2025-03-14 18:30",
		ItemsSummary:  "Gamer's Pizza x2 = P360\nCrispy Fries x1 = P80",
		Total:         440,
		ItemCount:     3,
		PCNumber:      "Not specified",
		PaymentMethod: models.PaymentPayPal,
	}}

	file, err := BuildOrdersWorkbook(orders)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	reread, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)

	rows := reread.Sheets[0].Rows
	require.Len(t, rows, 2)
	var header []string
	for _, c := range rows[0].Cells {
		header = append(header, c.Value)
	}
	assert.Equal(t, orderHeaders, header)
	assert.Equal(t, "Gamer's Pizza x2 = P360; Crispy Fries x1 = P80", rows[1].Cells[2].Value)
	assert.Equal(t, "3", rows[1].Cells[3].Value)
	assert.Equal(t, "PayPal", rows[1].Cells[6].Value)
}

func TestBuildOrdersWorkbookEmpty(t *testing.T) {
	file, err := BuildOrdersWorkbook(nil)
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 1)
}
