package util

import "github.com/spf13/pflag"

// AddFlagAliases registers hidden flags that feed the value of originalFlag, recording them in aliasMap
// for ApplyFlagAliases. Supported flag types are string, bool and stringSlice.
func AddFlagAliases(flags *pflag.FlagSet, originalFlag string, aliasMap map[string][]string, aliases ...string) {
	f := flags.Lookup(originalFlag)
	if f == nil {
		panic("bug! AddFlagAliases couldn't find original flag " + originalFlag)
	}
	for _, alias := range aliases {
		switch f.Value.Type() {
		case "bool":
			flags.Bool(alias, false, "")
		case "stringSlice":
			flags.StringSlice(alias, nil, "")
		case "string":
			flags.String(alias, f.DefValue, "")
		default:
			panic("bug! AddFlagAliases doesn't support flags of type " + f.Value.Type())
		}
		_ = flags.MarkHidden(alias)
	}
	aliasMap[originalFlag] = append(aliasMap[originalFlag], aliases...)
}

// ApplyFlagAliases copies values given through an alias across to the primary flag.
func ApplyFlagAliases(flags *pflag.FlagSet, aliases map[string][]string) {
	for primary, names := range aliases {
		primaryFlag := flags.Lookup(primary)
		for _, name := range names {
			aliasFlag := flags.Lookup(name)
			if aliasFlag == nil || !aliasFlag.Changed {
				continue
			}
			// Set appends for slice flags, so each element goes across on its own
			if slice, ok := aliasFlag.Value.(pflag.SliceValue); ok {
				for _, item := range slice.GetSlice() {
					_ = primaryFlag.Value.Set(item)
				}
				continue
			}
			_ = primaryFlag.Value.Set(aliasFlag.Value.String())
		}
	}
}
