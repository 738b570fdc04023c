package main

import (
	"flag"
	"io"
	"strings"

	"github.com/aleister1102/geoprobe/internal/catalog"
	"github.com/aleister1102/geoprobe/internal/config"
)

type AppFlags struct {
	TargetURL        string
	GlobalConfigFile string
	Countries        string
	Mode             string
}

// ParseFlags parses args (without the program name). Each long flag has a
// one-letter alias; the long form wins when both are set.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("geoprobe", flag.ContinueOnError)
	fs.SetOutput(output)

	targetURL := fs.String("url", "", "Target URL template. Use {code} where the country code goes.")
	targetURLAlias := fs.String("u", "", "Alias for -url")

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	countries := fs.String("countries", "", "Comma separated ISO 3166-1 alpha-2 codes to probe instead of the full catalog.")

	modeFlag := fs.String("mode", "", "Mode to run the tool: onetime or interactive (overrides config file if set)")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	return AppFlags{
		TargetURL:        firstNonEmpty(*targetURL, *targetURLAlias),
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		Countries:        *countries,
		Mode:             strings.ToLower(firstNonEmpty(*modeFlag, *modeFlagAlias)),
	}, nil
}

// Apply overrides config values with the flags that were set.
func (f AppFlags) Apply(cfg *config.GlobalConfig) {
	if f.Mode != "" {
		cfg.Mode = f.Mode
	}
	if f.TargetURL != "" {
		cfg.TargetURL = f.TargetURL
	}
	if f.Countries != "" {
		cfg.Countries = catalog.ParseCodeList(f.Countries)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
