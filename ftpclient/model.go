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
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	libftp "github.com/jlaffaye/ftp"
	liberr "github.com/nabbar/runtimecore/errors"
)

// ftpClient wraps one jlaffaye/ftp connection. Every command runs Check
// first, which reconnects transparently when the connection dropped, so a
// pooled client survives server-side idle timeouts.
type ftpClient struct {
	m sync.Mutex

	cfg *atomic.Value
	cli *atomic.Value
}

// load narrows an atomic.Value cell to T under the client lock.
func load[T any](f *ftpClient, av *atomic.Value) T {
	f.m.Lock()
	defer f.m.Unlock()

	var zero T
	if av == nil {
		return zero
	}
	if v, ok := av.Load().(T); ok {
		return v
	}
	return zero
}

func (f *ftpClient) getConfig() *Config {
	return load[*Config](f, f.cfg)
}

func (f *ftpClient) setConfig(cfg *Config) {
	f.m.Lock()
	defer f.m.Unlock()
	f.cfg.Store(cfg)
}

func (f *ftpClient) getClient() *libftp.ServerConn {
	return load[*libftp.ServerConn](f, f.cli)
}

func (f *ftpClient) setClient(cli *libftp.ServerConn) {
	f.m.Lock()
	defer f.m.Unlock()
	f.cli.Store(cli)
}

// Connect dials per the stored Config, reusing the live connection when a
// NOOP still answers and discarding it otherwise.
func (f *ftpClient) Connect() liberr.Error {
	if cli := f.getClient(); cli != nil {
		if cli.NoOp() == nil {
			return nil
		}
		_ = cli.Quit()
	}

	cfg := f.getConfig()
	if cfg == nil {
		return ErrorNotInitialized.Error(nil)
	}

	cli, err := cfg.New()
	if err != nil {
		return err
	}

	if e := cli.NoOp(); e != nil {
		return ErrorFTPConnectionCheck.Error(e)
	}

	f.setClient(cli)
	return nil
}

// Check guarantees a live connection, reconnecting when needed.
func (f *ftpClient) Check() liberr.Error {
	if err := f.Connect(); err != nil {
		return err
	}

	cli := f.getClient()
	if cli == nil {
		return ErrorNotInitialized.Error(nil)
	}

	if e := cli.NoOp(); e != nil {
		return ErrorFTPConnectionCheck.Error(e)
	}

	return nil
}

func (f *ftpClient) Close() {
	if cli := f.getClient(); cli != nil {
		_ = cli.Quit()
	}
}

// cmdErr wraps a raw ftp error with the client-level and wire-level
// command names.
func cmdErr(e error, name, wire string) liberr.Error {
	return ErrorFTPCommand.Error(e, fmt.Errorf("command : %s = %s", name, wire))
}

// run executes one void command against a checked connection.
func (f *ftpClient) run(name, wire string, fct func(c *libftp.ServerConn) error) liberr.Error {
	if err := f.Check(); err != nil {
		return err
	}

	if e := fct(f.getClient()); e != nil {
		return cmdErr(e, name, wire)
	}

	return nil
}

// runResult is run for a command returning a value.
func runResult[T any](f *ftpClient, name, wire string, fct func(c *libftp.ServerConn) (T, error)) (T, liberr.Error) {
	var zero T

	if err := f.Check(); err != nil {
		return zero, err
	}

	r, e := fct(f.getClient())
	if e != nil {
		return zero, cmdErr(e, name, wire)
	}

	return r, nil
}

func (f *ftpClient) NameList(path string) ([]string, liberr.Error) {
	return runResult(f, "NameList", "NLST", func(c *libftp.ServerConn) ([]string, error) {
		return c.NameList(path)
	})
}

func (f *ftpClient) List(path string) ([]*libftp.Entry, liberr.Error) {
	return runResult(f, "List", "MLSD/LIST", func(c *libftp.ServerConn) ([]*libftp.Entry, error) {
		return c.List(path)
	})
}

func (f *ftpClient) ChangeDir(path string) liberr.Error {
	return f.run("ChangeDir", "CWD", func(c *libftp.ServerConn) error {
		return c.ChangeDir(path)
	})
}

func (f *ftpClient) CurrentDir() (string, liberr.Error) {
	return runResult(f, "CurrentDir", "PWD", func(c *libftp.ServerConn) (string, error) {
		return c.CurrentDir()
	})
}

func (f *ftpClient) FileSize(path string) (int64, liberr.Error) {
	return runResult(f, "FileSize", "SIZE", func(c *libftp.ServerConn) (int64, error) {
		return c.FileSize(path)
	})
}

func (f *ftpClient) GetTime(path string) (time.Time, liberr.Error) {
	return runResult(f, "GetTime", "MDTM", func(c *libftp.ServerConn) (time.Time, error) {
		return c.GetTime(path)
	})
}

func (f *ftpClient) SetTime(path string, t time.Time) liberr.Error {
	return f.run("SetTime", "MFMT/MDTM", func(c *libftp.ServerConn) error {
		return c.SetTime(path, t)
	})
}

func (f *ftpClient) Retr(path string) (*libftp.Response, liberr.Error) {
	return runResult(f, "Retr", "RETR", func(c *libftp.ServerConn) (*libftp.Response, error) {
		return c.Retr(path)
	})
}

// RetrFrom keeps the plain error return its callers stream against.
func (f *ftpClient) RetrFrom(path string, offset uint64) (*libftp.Response, error) {
	if err := f.Check(); err != nil {
		return nil, err
	}

	r, e := f.getClient().RetrFrom(path, offset)
	if e != nil {
		return nil, cmdErr(e, "RetrFrom", "RETR")
	}

	return r, nil
}

func (f *ftpClient) Stor(path string, r io.Reader) liberr.Error {
	return f.run("Stor", "STOR", func(c *libftp.ServerConn) error {
		return c.Stor(path, r)
	})
}

func (f *ftpClient) StorFrom(path string, r io.Reader, offset uint64) liberr.Error {
	return f.run("StorFrom", "STOR", func(c *libftp.ServerConn) error {
		return c.StorFrom(path, r, offset)
	})
}

func (f *ftpClient) Append(path string, r io.Reader) liberr.Error {
	return f.run("Append", "APPE", func(c *libftp.ServerConn) error {
		return c.Append(path, r)
	})
}

func (f *ftpClient) Rename(from, to string) liberr.Error {
	return f.run("Rename", "RNFR/RNTO", func(c *libftp.ServerConn) error {
		return c.Rename(from, to)
	})
}

func (f *ftpClient) Delete(path string) liberr.Error {
	return f.run("Delete", "DELE", func(c *libftp.ServerConn) error {
		return c.Delete(path)
	})
}

func (f *ftpClient) RemoveDirRecur(path string) liberr.Error {
	return f.run("RemoveDirRecur", "DELE/RMD", func(c *libftp.ServerConn) error {
		return c.RemoveDirRecur(path)
	})
}

func (f *ftpClient) MakeDir(path string) liberr.Error {
	return f.run("MakeDir", "MKD", func(c *libftp.ServerConn) error {
		return c.MakeDir(path)
	})
}

func (f *ftpClient) RemoveDir(path string) liberr.Error {
	return f.run("RemoveDir", "RMD", func(c *libftp.ServerConn) error {
		return c.RemoveDir(path)
	})
}

func (f *ftpClient) Walk(root string) (*libftp.Walker, liberr.Error) {
	if err := f.Check(); err != nil {
		return nil, err
	}

	return f.getClient().Walk(root), nil
}
