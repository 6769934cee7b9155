package plugin

import (
	"fmt"
	"path/filepath"

	"github.com/alvmarrod/boxmon/internal/extract"
	"github.com/alvmarrod/boxmon/internal/munin"
	"github.com/alvmarrod/boxmon/internal/router"
)

// Family is one graph the plugin can draw, selected by the name it is
// invoked under
type Family int

const (
	Uptime Family = iota
	Speed
	Clients
	Intensity
)

// Router pages the families read
const (
	PageWAN      = "/state/wan"
	PageFiber    = "/fiber"
	PageLANExtra = "/state/lan/extra"
	PageWifi     = "/state/wifi"
	PageNetwork  = "/network"
)

// entry describes a family: the pages it needs, in the order its extractor
// takes them, and its static graph definition
type entry struct {
	name    string
	pages   []string
	extract func(docs []*router.Document) ([]munin.Sample, error)
	graph   func() []munin.Directive
}

var families = [...]entry{
	Uptime: {
		name:  "box_uptime",
		pages: []string{PageWAN, PageFiber},
		extract: func(docs []*router.Document) ([]munin.Sample, error) {
			return extract.Uptime(docs[0], docs[1])
		},
		graph: uptimeGraph,
	},
	Speed: {
		name:  "box_speed",
		pages: []string{PageLANExtra, PageWifi},
		extract: func(docs []*router.Document) ([]munin.Sample, error) {
			return extract.Speed(docs[0], docs[1])
		},
		graph: speedGraph,
	},
	Clients: {
		name:  "box_clients",
		pages: []string{PageNetwork},
		extract: func(docs []*router.Document) ([]munin.Sample, error) {
			return extract.Clients(docs[0])
		},
		graph: clientsGraph,
	},
	Intensity: {
		name:  "box_intensity",
		pages: []string{PageFiber},
		extract: func(docs []*router.Document) ([]munin.Sample, error) {
			return extract.Intensity(docs[0])
		},
		graph: intensityGraph,
	},
}

// Families returns every family in declaration order
func Families() []Family {
	out := make([]Family, len(families))
	for i := range families {
		out[i] = Family(i)
	}
	return out
}

// ParseFamily maps an invocation name such as /etc/munin/plugins/box_speed
// to its family
func ParseFamily(invocation string) (Family, error) {
	name := filepath.Base(invocation)
	for i, s := range families {
		if s.name == name {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("unknown plugin name %q", name)
}

// String returns the plugin name of f
func (f Family) String() string {
	if f < 0 || int(f) >= len(families) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return families[f].name
}

// Pages returns the router paths f fetches, in order
func (f Family) Pages() []string {
	return append([]string(nil), families[f].pages...)
}
