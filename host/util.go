// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/pkg/errors"
)

func codeString(b []byte) string {
	buf := make([]byte, 0, len(b)*3)
	for i, v := range b {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, hexString[v>>4], hexString[v&0xf])
	}
	return string(buf)
}

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, errors.Errorf("invalid bool value '%s'", s)
	}
}

var hexString = "0123456789ABCDEF"

// Split "file@addr" into its file name and optional address string.
func splitLoadArg(s string) (filename, addr string) {
	if i := strings.LastIndexByte(s, '@'); i > 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}
