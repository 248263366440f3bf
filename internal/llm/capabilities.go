package llm

import "strings"

// Capabilities lists the optional request parameters a model accepts.
type Capabilities struct {
	JSONMode bool
	Seed     bool
}

// noParamPrefixes are model families that take neither response_format
// nor seed. The Messages API has no seed parameter.
var noParamPrefixes = []string{"o1", "o3", "claude"}

// CapabilitiesFor reports what model accepts. A vendor prefix such as
// "openai/" is ignored.
func CapabilitiesFor(model string) Capabilities {
	name := strings.ToLower(model)
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	for _, p := range noParamPrefixes {
		if name == p || strings.HasPrefix(name, p+"-") {
			return Capabilities{}
		}
	}
	return Capabilities{JSONMode: true, Seed: true}
}
