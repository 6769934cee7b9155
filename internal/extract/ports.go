package extract

// Port is a physical or radio port of the router
type Port struct {
	// ID prefixes the metric ids of the port (lan1, wifi5, ...)
	ID string
	// UILabel is how the router's client table names the port; empty for
	// the uplink, which never carries clients
	UILabel string
	// DisplayName is the label shown on graphs
	DisplayName string
}

// Uplink is the fiber WAN port
var Uplink = Port{ID: "fiber", DisplayName: "WAN"}

// Ports lists the local ports in the order graphs show them
var Ports = []Port{
	{ID: "wifi24", UILabel: "Wifi 2.4GHz", DisplayName: "Wi-Fi 2.4 GHz"},
	{ID: "wifi5", UILabel: "Wifi 5GHz", DisplayName: "Wi-Fi 5 GHz"},
	{ID: "lan1", UILabel: "LAN 1", DisplayName: "Ethernet 1"},
	{ID: "lan2", UILabel: "LAN 2", DisplayName: "Ethernet 2"},
	{ID: "lan3", UILabel: "LAN 3", DisplayName: "Ethernet 3"},
	{ID: "lan4", UILabel: "LAN 4", DisplayName: "Ethernet 4"},
}

// PortByLabel finds a local port by its router UI label
func PortByLabel(label string) (Port, bool) {
	for _, p := range Ports {
		if p.UILabel == label {
			return p, true
		}
	}
	return Port{}, false
}

// PortByID finds a port, uplink included, by its metric id prefix
func PortByID(id string) (Port, bool) {
	if id == Uplink.ID {
		return Uplink, true
	}
	for _, p := range Ports {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}
