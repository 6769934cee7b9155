// Package main is the munin plugin entry point.
//
// Install by symlinking the binary into the munin plugins directory under
// the name of the graph to draw:
//
//	ln -s /usr/local/bin/box /etc/munin/plugins/box_uptime
//	ln -s /usr/local/bin/box /etc/munin/plugins/box_speed
//	ln -s /usr/local/bin/box /etc/munin/plugins/box_clients
//	ln -s /usr/local/bin/box /etc/munin/plugins/box_intensity
//
// and configure a [box_*] section with env.ip, env.password and
// env.hostname.
package main

import "os"

func main() {
	os.Exit(Execute(os.Args, os.Getenv, os.Stdout, os.Stderr))
}
