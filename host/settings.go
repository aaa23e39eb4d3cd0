// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/pkg/errors"
)

type settings struct {
	HexMode         bool   `doc:"hexadecimal input mode"`
	Color           bool   `doc:"highlight changed registers"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MaxStepLines    int    `doc:"max lines to disassemble when stepping"`
	LogLines        int    `doc:"default number of log entries to show"`
	LoadLimit       uint64 `doc:"stop before fetching past this count (0=off)"`
	ExecLimit       uint64 `doc:"stop after executing this many (0=off)"`
	Housekeeping    bool   `doc:"run CLI and CLD on reset"`
	BrkStop         bool   `doc:"stop before executing BRK"`
	NextDisasmAddr  uint16 `doc:"address of next disassembly"`
	NextMemDumpAddr uint16 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		MemDumpBytes: 64,
		DisasmLines:  10,
		MaxStepLines: 20,
		LogLines:     20,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	typ   reflect.Type
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			typ:   f.Type,
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var s string
		switch f.kind {
		case reflect.Uint16:
			s = fmt.Sprintf("    %-16s $%04X", f.name, uint16(v.Uint()))
		default:
			s = fmt.Sprintf("    %-16s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-28s (%s)\n", s, f.doc)
	}
}

// Lookup returns the canonical name and kind of the setting matching the
// key or an unambiguous prefix of it.
func (s *settings) Lookup(key string) (string, reflect.Kind, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return "", reflect.Invalid, errors.Wrapf(err, "setting '%s'", key)
	}
	return f.name, f.kind, nil
}

// Set assigns a value to the setting matching key. The value must be
// convertible to the setting's type.
func (s *settings) Set(key string, value any) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return errors.Wrapf(err, "setting '%s'", key)
	}

	vIn := reflect.ValueOf(value)
	if !vIn.Type().ConvertibleTo(f.typ) ||
		(f.kind == reflect.Bool) != (vIn.Kind() == reflect.Bool) {
		return errors.Errorf("invalid value type for %s", f.name)
	}

	vOut := reflect.ValueOf(s).Elem().Field(f.index)
	vOut.Set(vIn.Convert(f.typ))
	return nil
}
