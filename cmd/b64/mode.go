package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/iXeor/suricata/base64"
)

// modeFlag is a pflag.Value over the codec's closed Mode set.
type modeFlag base64.Mode

var _ pflag.Value = (*modeFlag)(nil)

func (m *modeFlag) String() string { return base64.Mode(*m).String() }

func (m *modeFlag) Set(s string) error {
	for _, mode := range []base64.Mode{
		base64.ModeRFC2045,
		base64.ModeStrict,
		base64.ModeRFC4648,
		base64.ModeNoPad,
		base64.ModePadOpt,
	} {
		if s == mode.String() {
			*m = modeFlag(mode)
			return nil
		}
	}
	return fmt.Errorf("unknown mode %q", s)
}

func (m *modeFlag) Type() string { return "mode" }
