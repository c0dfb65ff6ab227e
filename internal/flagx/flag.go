// Package flagx lets several independent flag sets share one command line.
//
// Each loader picks out only the flags it owns with FilterArgs and parses
// them with its own flag.FlagSet, so an unknown flag meant for another loader
// never aborts parsing.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the arguments whose flag name is listed in allowed.
// Both "-a value" and "-a=value" spellings are recognised; in the first form
// the following argument is kept as the value unless it starts with "-".
func FilterArgs(args []string, allowed []string) []string {
	names := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		names[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := names[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := names[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// or "" when neither is present. The last occurrence wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
