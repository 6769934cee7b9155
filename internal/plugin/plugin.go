// Package plugin dispatches an invocation to the definitions or the values
// output of one family.
package plugin

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/alvmarrod/boxmon/internal/config"
	"github.com/alvmarrod/boxmon/internal/metrics"
	"github.com/alvmarrod/boxmon/internal/munin"
	"github.com/alvmarrod/boxmon/internal/router"
)

// Fetcher returns a parsed router page
type Fetcher interface {
	Get(path string) (*router.Document, error)
}

// Plugin runs one family for one invocation
type Plugin struct {
	cfg     *config.Config
	family  Family
	tracker *metrics.Tracker
	login   func(ctx context.Context) (Fetcher, error)
}

// New creates a plugin talking to the router described by cfg
func New(cfg *config.Config, family Family, tracker *metrics.Tracker) *Plugin {
	if tracker == nil {
		tracker = metrics.NewTracker()
	}
	p := &Plugin{cfg: cfg, family: family, tracker: tracker}
	p.login = func(ctx context.Context) (Fetcher, error) {
		session, err := router.Login(ctx, p.cfg, p.tracker)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
	return p
}

// Run validates the configuration for mode and writes the family's output
// to w. Nothing is written unless the whole output could be produced.
func (p *Plugin) Run(ctx context.Context, mode config.Mode, w io.Writer) error {
	if err := p.cfg.ValidateFor(mode); err != nil {
		return err
	}

	if mode == config.ModeDefinitions {
		return munin.WriteConfig(w, p.Definitions())
	}

	samples, err := p.Values(ctx)
	if err != nil {
		return err
	}
	return munin.WriteValues(w, samples)
}

// Definitions returns the host_name line followed by the family's graph
// definition
func (p *Plugin) Definitions() []munin.Directive {
	return append(
		[]munin.Directive{{Key: "host_name", Value: p.cfg.Hostname}},
		families[p.family].graph()...,
	)
}

// Values logs in, fetches the family's pages and extracts the current sample
func (p *Plugin) Values(ctx context.Context) ([]munin.Sample, error) {
	fetcher, err := p.login(ctx)
	if err != nil {
		return nil, err
	}

	s := families[p.family]
	docs := make([]*router.Document, 0, len(s.pages))
	for _, page := range s.pages {
		doc, err := fetcher.Get(page)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	samples, err := s.extract(docs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}

	logrus.Debugf("%s: extracted %d fields", s.name, len(samples))
	return samples, nil
}
