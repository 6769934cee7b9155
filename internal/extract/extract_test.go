package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
	"github.com/alvmarrod/boxmon/internal/munin"
	"github.com/alvmarrod/boxmon/internal/router"
	"github.com/alvmarrod/boxmon/internal/routertest"
)

func page(t *testing.T, path, body string) *router.Document {
	t.Helper()
	doc, err := router.ParseDocument(path, []byte(body))
	require.NoError(t, err)
	return doc
}

func TestUptime(t *testing.T) {
	got, err := Uptime(page(t, "/state/wan", routertest.StatePage), page(t, "/fiber", routertest.FiberPage))
	require.NoError(t, err)

	assert.Equal(t, []munin.Sample{
		{ID: "router", Value: "12.14"},
		{ID: "fiber", Value: "5.8"},
	}, got)
}

func TestUptime_MissingRow(t *testing.T) {
	state := page(t, "/state/wan", `<table id="wan_info"><tr><td>a</td></tr></table>`)

	_, err := Uptime(state, page(t, "/fiber", routertest.FiberPage))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "/state/wan")
}

func TestUptime_MalformedCell(t *testing.T) {
	fiber := strings.Replace(routertest.FiberPage, "5 jours<br>2 heures<br>0 minutes", "inconnu", 1)

	_, err := Uptime(page(t, "/state/wan", routertest.StatePage), page(t, "/fiber", fiber))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "ont_infos uptime")
}

func TestSpeed(t *testing.T) {
	got, err := Speed(page(t, "/state/lan/extra", routertest.LanExtraPage), page(t, "/state/wifi", routertest.WifiPage))
	require.NoError(t, err)

	assert.Equal(t, []munin.Sample{
		{ID: "fiberdown", Value: "987654321012"},
		{ID: "fiberup", Value: "123456789012"},
		{ID: "wifi24down", Value: "5000"},
		{ID: "wifi24up", Value: "6000"},
		{ID: "wifi5down", Value: "7000"},
		{ID: "wifi5up", Value: "8000"},
		{ID: "lan1down", Value: "1000"},
		{ID: "lan1up", Value: "2000"},
		{ID: "lan2down", Value: "1100"},
		{ID: "lan2up", Value: "2100"},
		{ID: "lan3down", Value: "1200"},
		{ID: "lan3up", Value: "2200"},
		{ID: "lan4down", Value: "1300"},
		{ID: "lan4up", Value: "2300"},
	}, got)
}

func TestSpeed_MissingKey(t *testing.T) {
	wifi := strings.Replace(routertest.WifiPage, "txbyte = 8000", "tx = 8000", 1)

	_, err := Speed(page(t, "/state/lan/extra", routertest.LanExtraPage), page(t, "/state/wifi", wifi))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "wifi5 txbyte")
}

func TestSpeed_NotAByteCount(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "text", value: "n/a"},
		{name: "exponent", value: "1e3"},
		{name: "negative", value: "-5"},
		{name: "fraction", value: "12.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lan := strings.Replace(routertest.LanExtraPage, "rx_good_bytes = 1300", "rx_good_bytes = "+tt.value, 1)

			_, err := Speed(page(t, "/state/lan/extra", lan), page(t, "/state/wifi", routertest.WifiPage))
			require.Error(t, err)
			assert.ErrorIs(t, err, boxerrors.ErrParse)
			assert.Contains(t, err.Error(), "lan4 rx_good_bytes")
		})
	}
}

func TestSpeed_TooFewBlocks(t *testing.T) {
	wifi := `<html><body><pre>rxbyte = 1
txbyte = 2</pre></body></html>`

	_, err := Speed(page(t, "/state/lan/extra", routertest.LanExtraPage), page(t, "/state/wifi", wifi))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "pre blocks")
}

func TestClients(t *testing.T) {
	got, err := Clients(page(t, "/network", routertest.NetworkPage))
	require.NoError(t, err)

	assert.Equal(t, []munin.Sample{
		{ID: "wifi24", Value: "1"},
		{ID: "wifi5", Value: "1"},
		{ID: "lan1", Value: "2"},
		{ID: "lan2", Value: "0"},
		{ID: "lan3", Value: "0"},
		{ID: "lan4", Value: "0"},
	}, got)
}

func TestClients_NoRows(t *testing.T) {
	got, err := Clients(page(t, "/network", routertest.EmptyNetworkPage))
	require.NoError(t, err)

	require.Len(t, got, 6)
	for i, id := range []string{"wifi24", "wifi5", "lan1", "lan2", "lan3", "lan4"} {
		assert.Equal(t, munin.Sample{ID: id, Value: "0"}, got[i])
	}
}

func TestClients_UnknownPort(t *testing.T) {
	network := strings.Replace(routertest.NetworkPage, "<td>LAN 1</td>", "<td>LAN 5</td>", 1)

	_, err := Clients(page(t, "/network", network))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), `"LAN 5"`)
}

func TestClients_FirstBodyOnly(t *testing.T) {
	network := `<table id="network_clients">
<tbody><tr><td>laptop</td><td>192.168.1.10</td><td>aa:bb</td><td>actif</td><td>LAN 1</td></tr></tbody>
<tbody><tr><td>phone</td><td>192.168.1.11</td><td>cc:dd</td><td>actif</td><td>LAN 2</td></tr></tbody>
</table>`

	got, err := Clients(page(t, "/network", network))
	require.NoError(t, err)

	assert.Equal(t, munin.Sample{ID: "lan1", Value: "1"}, got[2])
	assert.Equal(t, munin.Sample{ID: "lan2", Value: "0"}, got[3])
}

func TestClients_ShortRow(t *testing.T) {
	network := `<table id="network_clients"><tbody><tr><td>laptop</td><td>192.168.1.10</td></tr></tbody></table>`

	_, err := Clients(page(t, "/network", network))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
}

func TestClients_MissingTable(t *testing.T) {
	_, err := Clients(page(t, "/network", `<html><body>Veuillez vous identifier</body></html>`))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "network_clients")
}

func TestIntensity(t *testing.T) {
	got, err := Intensity(page(t, "/fiber", routertest.FiberPage))
	require.NoError(t, err)

	assert.Equal(t, []munin.Sample{
		{ID: "tx", Value: "2.1"},
		{ID: "rx", Value: "-14.2"},
	}, got)
}

func TestIntensity_MissingRows(t *testing.T) {
	fiber := `<table id="ont_infos"><tr><td>I-010G-Q</td></tr></table>`

	_, err := Intensity(page(t, "/fiber", fiber))
	require.Error(t, err)
	assert.ErrorIs(t, err, boxerrors.ErrParse)
	assert.Contains(t, err.Error(), "row 7")
}

func TestPortLookups(t *testing.T) {
	p, ok := PortByLabel("Wifi 2.4GHz")
	require.True(t, ok)
	assert.Equal(t, "wifi24", p.ID)

	_, ok = PortByLabel("WAN")
	assert.False(t, ok)

	p, ok = PortByID("fiber")
	require.True(t, ok)
	assert.Equal(t, "WAN", p.DisplayName)

	labels := map[string]bool{}
	for _, p := range Ports {
		assert.False(t, labels[p.UILabel], "duplicate label %s", p.UILabel)
		labels[p.UILabel] = true
	}
}
