package main

import "flag"

// Options holds CLI options for the probe.
type Options struct {
    ConfigPath string
    Host       string
    Instance   string
    Transport  string
}

// ParseFlags parses CLI flags from args and returns Options.
func ParseFlags(args []string) Options {
    fs := flag.NewFlagSet("tdslink-probe", flag.ExitOnError)
    var opts Options
    fs.StringVar(&opts.ConfigPath, "config", "", "Path to YAML config file")
    fs.StringVar(&opts.Host, "host", "", "Override connection.host")
    fs.StringVar(&opts.Instance, "instance", "", "Override connection.instance")
    fs.StringVar(&opts.Transport, "transport", "", "Override connection.transport (tcp|pipe)")
    _ = fs.Parse(args)
    return opts
}
