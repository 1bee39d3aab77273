/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/sabouaram/irccd/internal/ircerr"
)

const errLoad ircerr.CodeError = ircerr.MinPkgConfig + 10

// Load reads a YAML (or JSON/TOML, per viper's own format sniffing)
// rendering of Config from path. It is a standalone convenience for
// `cmd/irccd`, not a substitute for the external token-based grammar
// described in §6.
func Load(path string) (Config, ircerr.Error) {
	var cfg Config

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(strings.TrimPrefix(filepath.Ext(path), "."))

	if err := v.ReadInConfig(); err != nil {
		return cfg, ircerr.New(errLoad.Uint16(), fmt.Sprintf("reading %s: %s", path, err.Error()), err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, ircerr.New(errLoad.Uint16(), fmt.Sprintf("decoding %s: %s", path, err.Error()), err)
	}

	if verr := cfg.Validate(); verr != nil {
		return cfg, verr
	}

	return cfg, nil
}
