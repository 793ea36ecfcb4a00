//go:build windows || plan9

package ipclog

import (
	"io"

	"github.com/Station-Manager/errors"
)

func dialFacility(string) (Facility, io.Closer, error) {
	const op errors.Op = "ipclog.dialFacility"
	return nil, nil, errors.New(op).Msg("system log is not available on this platform")
}
