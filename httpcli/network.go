/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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

package httpcli

import "strings"

// Network names the transport a Request's dialer targets. The HTTP
// schemes this package serves only ever dial TCP; UDP and unix stay
// parseable for callers configuring a transport by name.
type Network uint8

const (
	NetworkTCP Network = iota
	NetworkUDP
	NetworkUnix
)

// GetNetworkFromString parses a transport name, defaulting to TCP.
func GetNetworkFromString(str string) Network {
	switch {
	case strings.EqualFold(str, NetworkUDP.Code()):
		return NetworkUDP
	case strings.EqualFold(str, NetworkUnix.Code()):
		return NetworkUnix
	default:
		return NetworkTCP
	}
}

// String is the display form; Code is the lowercase form net.Dial takes.
func (n Network) String() string {
	switch n {
	case NetworkUDP:
		return "UDP"
	case NetworkUnix:
		return "unix"
	default:
		return "TCP"
	}
}

func (n Network) Code() string {
	return strings.ToLower(n.String())
}
