package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".thinobj"
	configType = "yaml"
	envPrefix  = "THINOBJ"

	keyModule         = "module"
	keySuffix         = "suffix"
	keyInheritance    = "experimental_inheritance"
	keyVerbose        = "verbose"
	keyQuiet          = "quiet"
	keyServeAddr      = "serve.addr"
	keyServeMaxSource = "serve.max_source_bytes"
	keyServeCORS      = "serve.cors"
)

// flagKeys maps configuration keys to the flags that override them
var flagKeys = map[string]string{
	keyModule:         "module",
	keySuffix:         "suffix",
	keyInheritance:    "experimental-inheritance",
	keyVerbose:        "verbose",
	keyQuiet:          "quiet",
	keyServeAddr:      "addr",
	keyServeMaxSource: "max-source-bytes",
	keyServeCORS:      "cors",
}

// loadConfig reads .thinobj.yaml (or the file named by --config), the
// THINOBJ_* environment and the flags of cmd, in increasing precedence.
// A missing default config file is not an error.
func loadConfig(path string, cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, err
	}
	return v, nil
}
