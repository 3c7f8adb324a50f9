package main

import "flag"

type AppFlags struct {
	ConfigFile string
	Mode       string
	TargetURL  string
}

func ParseFlags() AppFlags {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the tool: onetime or automated (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	targetURL := flag.String("target", "", "URL of the monitored page (overrides config file if set)")
	targetURLAlias := flag.String("t", "", "Alias for -target")

	flag.Parse()

	flags := AppFlags{}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if *targetURL != "" {
		flags.TargetURL = *targetURL
	} else if *targetURLAlias != "" {
		flags.TargetURL = *targetURLAlias
	}

	return flags
}
