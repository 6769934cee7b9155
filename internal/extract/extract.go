package extract

import (
	"fmt"
	"strconv"
	"strings"

	boxerrors "github.com/alvmarrod/boxmon/internal/errors"
	"github.com/alvmarrod/boxmon/internal/munin"
	"github.com/alvmarrod/boxmon/internal/router"
)

// Table ids and row positions on the router pages
const (
	wanInfoTable        = "wan_info"
	wanUptimeRow        = 2
	ontInfoTable        = "ont_infos"
	ontUptimeRow        = 3
	ontRxPowerRow       = 7
	ontTxPowerRow       = 8
	networkClientsTable = "network_clients"
	clientPortCell      = 4
)

// Keys of the per-port counter blocks
const (
	wiredRxKey = "rx_good_bytes"
	wiredTxKey = "tx_good_bytes"
	radioRxKey = "rxbyte"
	radioTxKey = "txbyte"
)

// Positions of the <pre> blocks: LAN 1-4 then the uplink on the LAN page,
// 2.4GHz then 5GHz on the Wi-Fi page
var (
	wiredBlocks = []string{"lan1", "lan2", "lan3", "lan4", "fiber"}
	radioBlocks = []string{"wifi24", "wifi5"}
)

// SpeedPorts lists the ports of the traffic graph in field order: the
// uplink first, then the local ports. Each gives a down then an up field.
func SpeedPorts() []Port {
	return append([]Port{Uplink}, Ports...)
}

// Uptime reads the router uptime from /state/wan and the ONT uptime from
// /fiber, as "<days>.<percent of day>"
func Uptime(state, fiber *router.Document) ([]munin.Sample, error) {
	routerUptime, err := uptimeCell(state, wanInfoTable, wanUptimeRow)
	if err != nil {
		return nil, err
	}
	ontUptime, err := uptimeCell(fiber, ontInfoTable, ontUptimeRow)
	if err != nil {
		return nil, err
	}

	return []munin.Sample{
		{ID: "router", Value: routerUptime},
		{ID: "fiber", Value: ontUptime},
	}, nil
}

func uptimeCell(doc *router.Document, table string, index int) (string, error) {
	field := fmt.Sprintf("%s uptime (row %d)", table, index)

	row, err := doc.Row(table, index)
	if err != nil {
		return "", err
	}
	text, err := doc.Cell(row, 0, field)
	if err != nil {
		return "", err
	}

	value, err := ParseDuration(text)
	if err != nil {
		return "", boxerrors.NewParseError(doc.Page, field, err)
	}
	return value, nil
}

// Speed reads the cumulative byte counters of every port from
// /state/lan/extra and /state/wifi. Rates are derived by munin.
func Speed(lan, wifi *router.Document) ([]munin.Sample, error) {
	ports := SpeedPorts()
	counters := make(map[string][2]string, len(ports))

	if err := readBlocks(lan, wiredBlocks, wiredRxKey, wiredTxKey, counters); err != nil {
		return nil, err
	}
	if err := readBlocks(wifi, radioBlocks, radioRxKey, radioTxKey, counters); err != nil {
		return nil, err
	}

	samples := make([]munin.Sample, 0, 2*len(ports))
	for _, p := range ports {
		c := counters[p.ID]
		samples = append(samples,
			munin.Sample{ID: p.ID + "down", Value: c[0]},
			munin.Sample{ID: p.ID + "up", Value: c[1]},
		)
	}
	return samples, nil
}

func readBlocks(doc *router.Document, ports []string, rxKey, txKey string, into map[string][2]string) error {
	blocks := doc.Pre()
	if len(blocks) < len(ports) {
		return boxerrors.NewParseError(doc.Page, "pre blocks",
			fmt.Errorf("found %d, want %d", len(blocks), len(ports)))
	}

	for i, port := range ports {
		values := ParseKeyValues(blocks[i])

		rx, err := counter(doc, port, values, rxKey)
		if err != nil {
			return err
		}
		tx, err := counter(doc, port, values, txKey)
		if err != nil {
			return err
		}
		into[port] = [2]string{rx, tx}
	}
	return nil
}

func counter(doc *router.Document, port string, values map[string]string, key string) (string, error) {
	field := port + " " + key

	value, ok := values[key]
	if !ok {
		return "", boxerrors.NewParseError(doc.Page, field, fmt.Errorf("key not found"))
	}
	if _, err := strconv.ParseUint(value, 10, 64); err != nil {
		return "", boxerrors.NewParseError(doc.Page, field, fmt.Errorf("%q is not a byte count", value))
	}
	return value, nil
}

// Clients counts the connected machines per local port from /network.
// Every port is reported, zero included; an unknown port label fails.
func Clients(network *router.Document) ([]munin.Sample, error) {
	rows, err := network.Rows(networkClientsTable)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(Ports))
	for i := range rows.Length() {
		field := fmt.Sprintf("%s row %d port", networkClientsTable, i)

		label, err := network.Cell(rows.Eq(i), clientPortCell, field)
		if err != nil {
			return nil, err
		}

		label = strings.TrimSpace(label)
		port, ok := PortByLabel(label)
		if !ok {
			return nil, boxerrors.NewParseError(network.Page, field, fmt.Errorf("unknown port %q", label))
		}
		counts[port.ID]++
	}

	samples := make([]munin.Sample, 0, len(Ports))
	for _, p := range Ports {
		samples = append(samples, munin.Sample{ID: p.ID, Value: fmt.Sprint(counts[p.ID])})
	}
	return samples, nil
}

// Intensity reads the optical receive and transmit power, in dBm, from /fiber
func Intensity(fiber *router.Document) ([]munin.Sample, error) {
	rx, err := powerCell(fiber, ontRxPowerRow, "rx power")
	if err != nil {
		return nil, err
	}
	tx, err := powerCell(fiber, ontTxPowerRow, "tx power")
	if err != nil {
		return nil, err
	}

	return []munin.Sample{
		{ID: "tx", Value: tx},
		{ID: "rx", Value: rx},
	}, nil
}

func powerCell(doc *router.Document, index int, name string) (string, error) {
	field := fmt.Sprintf("%s %s (row %d)", ontInfoTable, name, index)

	row, err := doc.Row(ontInfoTable, index)
	if err != nil {
		return "", err
	}
	text, err := doc.Cell(row, 0, field)
	if err != nil {
		return "", err
	}

	value, err := FirstNumber(text)
	if err != nil {
		return "", boxerrors.NewParseError(doc.Page, field, err)
	}
	return value, nil
}
