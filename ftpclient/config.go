/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
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

package ftpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	libval "github.com/go-playground/validator/v10"
	libftp "github.com/jlaffaye/ftp"
	liberr "github.com/nabbar/runtimecore/errors"
)

// ConfigTimeZone forces a server-side time zone by name and offset.
type ConfigTimeZone struct {
	Name   string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Offset int    `mapstructure:"offset" json:"offset" yaml:"offset" toml:"offset"`
}

// Config carries everything a dial needs. The protocol-toggle flags map
// one-to-one onto jlaffaye/ftp dial options.
type Config struct {
	// Hostname is the host:port to dial.
	Hostname string `mapstructure:"hostname" json:"hostname" yaml:"hostname" toml:"hostname" validate:"required,hostname_port"`

	// Login / Password feed the USER/PASS exchange; both empty skips it.
	Login    string `mapstructure:"login" json:"login" yaml:"login" toml:"login"`
	Password string `mapstructure:"password" json:"password" yaml:"password" toml:"password"`

	// ConnTimeout bounds the whole connection (dial, store, read).
	ConnTimeout time.Duration `mapstructure:"conn_timeout" json:"conn_timeout" yaml:"conn_timeout" toml:"conn_timeout"`

	// TimeZone forces the zone used to interpret server timestamps.
	TimeZone ConfigTimeZone `mapstructure:"timezone" json:"timezone" yaml:"timezone" toml:"timezone"`

	// Protocol toggles: UTF8 translation, EPSV (RFC 2428), MLSD
	// (RFC 3659), MDTM writing (RFC 3659).
	DisableUTF8 bool `mapstructure:"disable_utf8" json:"disable_utf8" yaml:"disable_utf8" toml:"disable_utf8"`
	DisableEPSV bool `mapstructure:"disable_epsv" json:"disable_epsv" yaml:"disable_epsv" toml:"disable_epsv"`
	DisableMLSD bool `mapstructure:"disable_mlsd" json:"disable_mlsd" yaml:"disable_mlsd" toml:"disable_mlsd"`
	EnableMDTM  bool `mapstructure:"enable_mdtm" json:"enable_mdtm" yaml:"enable_mdtm" toml:"enable_mdtm"`

	// ForceTLS upgrades with explicit TLS (AUTH TLS); otherwise a
	// non-nil TLS dials implicit TLS. Nil uses the Go default config.
	ForceTLS bool        `mapstructure:"force_tls" json:"force_tls" yaml:"force_tls" toml:"force_tls"`
	TLS      *tls.Config `mapstructure:"-" json:"-" yaml:"-" toml:"-"`

	fctx func() context.Context
}

// Validate checks the struct tags, folding every violation into one
// coded error. Nil when everything passes.
func (c *Config) Validate() liberr.Error {
	err := libval.New().Struct(c)
	if err == nil {
		return nil
	}

	e := ErrorValidatorError.Error(nil)

	if er, ok := err.(*libval.InvalidValidationError); ok {
		e.Add(er)
	}

	for _, er := range err.(libval.ValidationErrors) {
		e.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
	}

	if !e.HasParent() {
		return nil
	}

	return e
}

// RegisterContext supplies the context each dial is bound to.
func (c *Config) RegisterContext(fct func() context.Context) {
	c.fctx = fct
}

// dialOptions translates the config into jlaffaye/ftp dial options.
func (c *Config) dialOptions() []libftp.DialOption {
	opt := make([]libftp.DialOption, 0, 8)

	switch {
	case c.ForceTLS:
		opt = append(opt, libftp.DialWithExplicitTLS(c.TLS))
	case c.TLS != nil:
		opt = append(opt, libftp.DialWithTLS(c.TLS))
	}

	if c.fctx != nil {
		opt = append(opt, libftp.DialWithContext(c.fctx()))
	}
	if c.ConnTimeout != 0 {
		opt = append(opt, libftp.DialWithTimeout(c.ConnTimeout))
	}
	if c.TimeZone.Name != "" {
		opt = append(opt, libftp.DialWithLocation(time.FixedZone(c.TimeZone.Name, c.TimeZone.Offset)))
	}
	if c.DisableUTF8 {
		opt = append(opt, libftp.DialWithDisabledUTF8(true))
	}
	if c.DisableEPSV {
		opt = append(opt, libftp.DialWithDisabledEPSV(true))
	}
	if c.DisableMLSD {
		opt = append(opt, libftp.DialWithDisabledMLSD(true))
	}
	if c.EnableMDTM {
		opt = append(opt, libftp.DialWithWritingMDTM(true))
	}

	return opt
}

// New dials and, when credentials are set, logs in. A login failure
// returns the live connection alongside the error so the caller can
// still Quit it.
func (c *Config) New() (*libftp.ServerConn, liberr.Error) {
	cli, err := libftp.Dial(c.Hostname, c.dialOptions()...)
	if err != nil {
		return nil, ErrorFTPConnection.Error(err)
	}

	if c.Login == "" && c.Password == "" {
		return cli, nil
	}

	if err = cli.Login(c.Login, c.Password); err != nil {
		return cli, ErrorFTPLogin.Error(err)
	}

	return cli, nil
}
