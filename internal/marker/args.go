package marker

import (
	"regexp"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// argPattern matches name="value" or name='value'. Go's RE2 has no
// backreferences, so each quote style gets its own alternative.
var argPattern = regexp.MustCompile(`(\w+)[ \t]*=[ \t]*(?:"([^"]*)"|'([^']*)')`)

// ParseArgs extracts every name="value" / name='value' pair from an argument
// list. Anything that does not match is ignored. When a name repeats, the last
// occurrence wins.
func ParseArgs(argList string) options.BlockOptions {
	out := options.BlockOptions{}
	for _, m := range argPattern.FindAllStringSubmatchIndex(argList, -1) {
		name := argList[m[2]:m[3]]
		var value string
		switch {
		case m[4] >= 0:
			value = argList[m[4]:m[5]]
		case m[6] >= 0:
			value = argList[m[6]:m[7]]
		}
		out[name] = value
	}
	return out
}
