package plugin

import (
	"github.com/alvmarrod/boxmon/internal/extract"
	"github.com/alvmarrod/boxmon/internal/munin"
)

// Maximum port speed in bytes per second, as munin's field max
const portMaxSpeed = "1000000000"

func uptimeGraph() []munin.Directive {
	return []munin.Directive{
		{Key: "graph_title", Value: "Uptime"},
		{Key: "graph_args", Value: "--base 1000 -l 0"},
		{Key: "graph_scale", Value: "no"},
		{Key: "graph_vlabel", Value: "uptime in days"},
		{Key: "graph_category", Value: "system"},
		munin.Field("router", "label", "Router"),
		munin.Field("fiber", "label", "ONT"),
	}
}

func clientsGraph() []munin.Directive {
	d := []munin.Directive{
		{Key: "graph_title", Value: "Network Clients"},
		{Key: "graph_args", Value: "-l 0"},
		{Key: "graph_vlabel", Value: "clients"},
		{Key: "graph_category", Value: "network"},
	}
	for _, p := range extract.Ports {
		d = append(d, munin.Field(p.ID, "label", p.DisplayName))
	}
	return d
}

func speedGraph() []munin.Directive {
	d := []munin.Directive{
		{Key: "graph_order", Value: "fiber lan1 lan2 lan3 lan4"},
		{Key: "graph_title", Value: "Traffic"},
		{Key: "graph_args", Value: "--base 1000"},
		{Key: "graph_vlabel", Value: "bits in (-) / out (+) per ${graph_period}"},
		{Key: "graph_category", Value: "network"},
		{Key: "update_rate", Value: "60"},
	}
	for _, p := range extract.SpeedPorts() {
		down, up := p.ID+"down", p.ID+"up"
		d = append(d,
			munin.Field(down, "label", p.DisplayName+" received"),
			munin.Field(down, "type", "DERIVE"),
			munin.Field(down, "graph", "no"),
			munin.Field(down, "cdef", down+",8,*"),
			munin.Field(down, "min", "0"),
			munin.Field(down, "max", portMaxSpeed),
			munin.Field(up, "label", p.DisplayName),
			munin.Field(up, "type", "DERIVE"),
			munin.Field(up, "negative", down),
			munin.Field(up, "cdef", up+",8,*"),
			munin.Field(up, "min", "0"),
			munin.Field(up, "max", portMaxSpeed),
			munin.Field(up, "info", "Traffic of "+p.DisplayName+" port. Max speed is 1000 Mb/s"),
		)
	}
	return d
}

func intensityGraph() []munin.Directive {
	return []munin.Directive{
		{Key: "graph_title", Value: "Optical Signal Intensity"},
		{Key: "graph_args", Value: "--base 1000"},
		{Key: "graph_vlabel", Value: "dBm"},
		{Key: "graph_category", Value: "network"},
		munin.Field("tx", "label", "Transmission"),
		munin.Field("rx", "label", "Reception"),
	}
}
