package cli

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InputsKey lists input files in a config file when none are given on
// the command line.
const InputsKey = "inputs"

// MergeConfig fills every flag not set on the command line from the
// --config file, if one was given. Keys are flag names.
func (o *Options) MergeConfig(fs *pflag.FlagSet) error {
	if o.Config == "" {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(o.Config)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("--config: %w", err)
	}

	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || f.Name == "config" || !v.IsSet(f.Name) {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			err = sv.Replace(v.GetStringSlice(f.Name))
		} else {
			err = f.Value.Set(v.GetString(f.Name))
		}
		if err != nil {
			err = fmt.Errorf("--config: %s: %w", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	if len(o.Files1) == 0 && v.IsSet(InputsKey) {
		o.Files1 = v.GetStringSlice(InputsKey)
	}
	return nil
}
