package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uyuni-actions/internal/types"
)

// capabilityPattern matches one entry of the X-RHN-Client-Capability
// header: name(version)=value.
var capabilityPattern = regexp.MustCompile(`^([^(\s]+)\((\d+)\)\s*=\s*(\d+)$`)

// ParseCapabilities parses client capability header values. Each value may
// hold several comma separated entries. A later entry for the same name
// replaces an earlier one.
func ParseCapabilities(headers []string) (types.Capabilities, error) {
	caps := types.Capabilities{}
	for _, header := range headers {
		for _, entry := range strings.Split(header, ",") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			match := capabilityPattern.FindStringSubmatch(entry)
			if match == nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("malformed client capability %q", entry))
			}
			version, err := strconv.Atoi(match[2])
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid version in client capability %q", entry)).
					WithCause(err)
			}
			value, err := strconv.Atoi(match[3])
			if err != nil {
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("invalid value in client capability %q", entry)).
					WithCause(err)
			}
			caps[match[1]] = types.Capability{Version: version, Value: value}
		}
	}
	return caps, nil
}

// SupportsMultiarch reports whether the client expects an architecture in
// package tuples of packages.update and packages.remove.
func SupportsMultiarch(caps types.Capabilities) bool {
	return caps.VersionOf(types.CapabilityPackagesUpdate) > 1
}
