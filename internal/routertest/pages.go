package routertest

// Status pages as served by the router firmware. The markup is kept as
// sloppy as the real thing: bare rows without tbody, unclosed cells and
// stray entities.

// StatePage is /state/wan. Router uptime is row 2 of wan_info.
const StatePage = `<!DOCTYPE html>
<html><head><title>Etat WAN</title></head>
<body>
<div id="content">
<table id="wan_info" class="stat">
<tr><th>Etat</th><td>Connecte &nbsp;
<tr><th>Adresse IP</th><td>203.0.113.7</td></tr>
<tr><th>Uptime</th><td>12 jours<br>
	3 heures<br>
	30 minutes</td></tr>
<tr><th>Protocole</th><td>DHCP</td></tr>
</table>
</div>
</body></html>
`

// FiberPage is /fiber. ONT uptime is row 3, optical rx/tx power rows 7 and 8.
const FiberPage = `<html><head><title>Fibre</title></head>
<body>
<table id="ont_infos">
	<tr><th>Modele</th><td>I-010G-Q</td></tr>
	<tr><th>Numero de serie</th><td>ALCL0000AAAA</td></tr>
	<tr><th>Statut</th><td>up</td></tr>
	<tr><th>Uptime</th><td>5 jours<br>2 heures<br>0 minutes</td></tr>
	<tr><th>Version</th><td>3FE56773AFGB89</td></tr>
	<tr><th>Temperature</th><td>41 &deg;C</td></tr>
	<tr><th>Tension</th><td>3.3 V</td></tr>
	<tr><th>Puissance recue</th><td>-14.2 dBm (Rx Power)</td></tr>
	<tr><th>Puissance emise</th><td>2.1 dBm (Tx Power)</td></tr>
</table>
</body></html>
`

// LanExtraPage is /state/lan/extra: LAN 1 to 4 then the uplink port.
const LanExtraPage = `<html><body>
<h2>Port 1</h2>
<pre>
rx_good_bytes = 1000
tx_good_bytes = 2000
rx_bad_frames = 0
</pre>
<h2>Port 2</h2>
<pre>
rx_good_bytes=1100
tx_good_bytes=2100

</pre>
<h2>Port 3</h2>
<pre>   rx_good_bytes   =   1200
   tx_good_bytes   =   2200
</pre>
<h2>Port 4</h2>
<pre>
rx_good_bytes = 1300
tx_good_bytes = 2300
</pre>
<h2>WAN</h2>
<pre>
link = up
rx_good_bytes = 987654321012
tx_good_bytes = 123456789012
</pre>
</body></html>
`

// WifiPage is /state/wifi: the 2.4GHz radio then the 5GHz radio.
const WifiPage = `<html><body>
<pre>
ssid = box-24
rxbyte = 5000
txbyte = 6000
</pre>
<pre>
ssid = box-5
rxbyte = 7000
txbyte = 8000
</pre>
</body></html>
`

// NetworkPage is /network with four connected clients.
const NetworkPage = `<html><body>
<table id="network_clients">
<thead>
<tr><th>Nom</th><th>IP</th><th>MAC</th><th>Type</th><th>Port</th></tr>
</thead>
<tbody>
<tr><td>laptop<td>192.168.1.10<td>aa:bb:cc:00:00:01<td>dhcp<td> Wifi 5GHz </td></tr>
<tr><td>phone</td><td>192.168.1.11</td><td>aa:bb:cc:00:00:02</td><td>dhcp</td><td>Wifi 2.4GHz</td></tr>
<tr><td>nas</td><td>192.168.1.2</td><td>aa:bb:cc:00:00:03</td><td>static</td><td>LAN 1</td></tr>
<tr><td>tv</td><td>192.168.1.12</td><td>aa:bb:cc:00:00:04</td><td>dhcp</td><td>LAN 1</td></tr>
</tbody>
</table>
</body></html>
`

// EmptyNetworkPage is /network with no client connected.
const EmptyNetworkPage = `<html><body>
<table id="network_clients">
<thead><tr><th>Nom</th><th>IP</th><th>MAC</th><th>Type</th><th>Port</th></tr></thead>
<tbody>
</tbody>
</table>
</body></html>
`

// Pages maps every status path to its default body.
func Pages() map[string]string {
	return map[string]string{
		"/state/wan":       StatePage,
		"/fiber":           FiberPage,
		"/state/lan/extra": LanExtraPage,
		"/state/wifi":      WifiPage,
		"/network":         NetworkPage,
	}
}
