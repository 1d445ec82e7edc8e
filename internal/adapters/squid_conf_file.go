package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"uyuni-actions/internal/ports"
)

const DefaultSquidConfPath = "/etc/squid/squid.conf"

type SquidConfFileAdapter struct{}

func NewSquidConfFileAdapter() SquidConfFileAdapter {
	return SquidConfFileAdapter{}
}

func (a SquidConfFileAdapter) ReadSquidConf(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("squid config file not found").
			WithCause(err)
	}
	return string(data), nil
}

// WriteSquidConf truncates and rewrites the existing file so its mode and
// ownership are kept.
func (a SquidConfFileAdapter) WriteSquidConf(path string, content string) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open squid config for writing").
			WithCause(err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write squid config").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close squid config").
			WithCause(err)
	}
	return nil
}

var _ ports.SquidConfPort = SquidConfFileAdapter{}
