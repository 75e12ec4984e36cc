package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags maps config keys to flag names so a flag set on the command
// line overrides env and file values. Unchanged flags fall through.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
