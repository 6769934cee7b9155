// Package munin writes the plugin protocol lines munin-node reads on stdout.
package munin

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Sample is one field value of the current run: "<ID>.value <Value>".
type Sample struct {
	ID    string
	Value string
}

// Directive is one configuration line: "<Key> <Value>".
type Directive struct {
	Key   string
	Value string
}

// Field builds a per-field directive such as "lan1down.type DERIVE".
func Field(id, attr, value string) Directive {
	return Directive{Key: id + "." + attr, Value: value}
}

// WriteValues prints one "<id>.value <value>" line per sample.
func WriteValues(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	for _, s := range samples {
		if _, err := fmt.Fprintf(bw, "%s.value %s\n", s.ID, s.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteConfig prints one "<key> <value>" line per directive.
func WriteConfig(w io.Writer, directives []Directive) error {
	bw := bufio.NewWriter(w)
	for _, d := range directives {
		if _, err := fmt.Fprintf(bw, "%s %s\n", d.Key, d.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FieldIDs returns, in order of first appearance, the field ids declared by
// "<id>.label" directives.
func FieldIDs(directives []Directive) []string {
	var ids []string
	for _, d := range directives {
		if id, ok := strings.CutSuffix(d.Key, ".label"); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
