package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
	"github.com/alvmarrod/boxmon/internal/router"
	"github.com/alvmarrod/boxmon/internal/routertest"
)

func parse(t *testing.T, page, body string) *router.Document {
	t.Helper()
	doc, err := router.ParseDocument(page, []byte(body))
	require.NoError(t, err)
	return doc
}

func TestParseDocument_Tolerant(t *testing.T) {
	// Unclosed tags and stray entities still give a tree.
	doc := parse(t, "/broken", `<table id="t"><tr><td>a &bogus; <td>b<tr><td>c`)

	rows, err := doc.Rows("t")
	require.NoError(t, err)
	assert.Equal(t, 2, rows.Length())

	cell, err := doc.Cell(rows.Eq(0), 1, "t[0][1]")
	require.NoError(t, err)
	assert.Equal(t, "b", cell)
}

func TestDocument_TableMissing(t *testing.T) {
	doc := parse(t, "/state/wan", `<html><body><table id="other"></table></body></html>`)

	_, err := doc.Table("wan_info")
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "/state/wan")
	assert.Contains(t, err.Error(), "wan_info")
}

func TestDocument_RowOutOfRange(t *testing.T) {
	doc := parse(t, "/state/wan", routertest.StatePage)

	_, err := doc.Row("wan_info", 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "row 4")

	_, err = doc.Row("wan_info", -1)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
}

func TestDocument_RowsSkipHeader(t *testing.T) {
	doc := parse(t, "/network", routertest.NetworkPage)

	rows, err := doc.Rows("network_clients")
	require.NoError(t, err)
	assert.Equal(t, 4, rows.Length())
}

func TestDocument_RowsFirstBodyOnly(t *testing.T) {
	doc := parse(t, "/network", `<table id="t">
<tbody><tr><td>a</td></tr><tr><td>b</td></tr></tbody>
<tbody><tr><td>c</td></tr></tbody>
</table>`)

	rows, err := doc.Rows("t")
	require.NoError(t, err)
	assert.Equal(t, 2, rows.Length())

	_, err = doc.Row("t", 2)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
}

func TestDocument_CellOutOfRange(t *testing.T) {
	doc := parse(t, "/network", `<table id="t"><tr><td>only</td></tr></table>`)

	row, err := doc.Row("t", 0)
	require.NoError(t, err)

	_, err = doc.Cell(row, 4, "port")
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "port")
}

func TestDocument_CellTextBreaks(t *testing.T) {
	doc := parse(t, "/fiber", `<table id="t"><tr><th>x</th><td>5 jours<br>2 heures<br/>0 <!-- hidden -->minutes</td></tr></table>`)

	row, err := doc.Row("t", 0)
	require.NoError(t, err)

	cell, err := doc.Cell(row, 0, "uptime")
	require.NoError(t, err)
	assert.Equal(t, "5 jours\n2 heures\n0 minutes", cell)
}

func TestDocument_Pre(t *testing.T) {
	doc := parse(t, "/state/wifi", routertest.WifiPage)

	blocks := doc.Pre()
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "rxbyte = 5000")
	assert.Contains(t, blocks[1], "txbyte = 8000")
}
