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

// Command irccdctl is a minimal reference client for the control socket
// protocol (§4.6): it is explicitly an external interface (§1), included
// here only so the protocol is exercised end-to-end by something other
// than tests. One-shot use sends a single verb line and prints the
// reply; with no verb it drops into an interactive go-prompt REPL.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	spfcbr "github.com/spf13/cobra"
)

var socketPath string

var verbs = []prompt.Suggest{
	{Text: "HOOK-ADD", Description: "name command"},
	{Text: "HOOK-LIST", Description: ""},
	{Text: "HOOK-REMOVE", Description: "name"},
	{Text: "PLUGIN-CONFIG", Description: "id [key [value]]"},
	{Text: "PLUGIN-PATH", Description: "id [key [value]]"},
	{Text: "PLUGIN-TEMPLATE", Description: "id [key [value]]"},
	{Text: "PLUGIN-INFO", Description: "id"},
	{Text: "PLUGIN-LIST", Description: ""},
	{Text: "PLUGIN-LOAD", Description: "id"},
	{Text: "PLUGIN-RELOAD", Description: "id"},
	{Text: "PLUGIN-UNLOAD", Description: "id"},
	{Text: "RULE-ADD", Description: "accept|drop [s=.. c=.. o=.. p=.. e=.. i=index]"},
	{Text: "RULE-EDIT", Description: "index [a=accept|drop] [set ops]"},
	{Text: "RULE-LIST", Description: ""},
	{Text: "RULE-MOVE", Description: "from to"},
	{Text: "RULE-REMOVE", Description: "index"},
	{Text: "SERVER-CONNECT", Description: "id host [+]port nick user realname"},
	{Text: "SERVER-DISCONNECT", Description: "id"},
	{Text: "SERVER-INFO", Description: "id"},
	{Text: "SERVER-INVITE", Description: "id channel target"},
	{Text: "SERVER-JOIN", Description: "id channel [password]"},
	{Text: "SERVER-KICK", Description: "id channel target [reason]"},
	{Text: "SERVER-LIST", Description: ""},
	{Text: "SERVER-ME", Description: "id target message"},
	{Text: "SERVER-MESSAGE", Description: "id target message"},
	{Text: "SERVER-MODE", Description: "id channel mode [args]"},
	{Text: "SERVER-NOTICE", Description: "id target message"},
	{Text: "SERVER-PART", Description: "id channel [reason]"},
	{Text: "SERVER-RECONNECT", Description: "id"},
	{Text: "SERVER-TOPIC", Description: "id channel topic"},
	{Text: "WATCH", Description: ""},
}

// client owns one control-socket connection. A reply to any verb is a
// single status line; when it reads "OK n", n payload lines follow
// (six lines per rule for RULE-LIST).
type client struct {
	conn net.Conn
	in   *bufio.Scanner
}

func dial(path string) (*client, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, err
	}
	return &client{conn: conn, in: bufio.NewScanner(conn)}, nil
}

func (c *client) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *client) send(line string) string {
	if _, err := fmt.Fprintln(c.conn, line); err != nil {
		return "ERROR " + err.Error()
	}

	status, ok := c.readLine()
	if !ok {
		return "ERROR connection closed"
	}

	var count int
	if n, _ := fmt.Sscanf(status, "OK %d", &count); n == 1 && count > 0 {
		if verb, _, _ := strings.Cut(line, " "); verb == "RULE-LIST" {
			count *= 6
		}

		var b strings.Builder
		b.WriteString(status)
		for i := 0; i < count; i++ {
			if line, ok := c.readLine(); ok {
				b.WriteByte('\n')
				b.WriteString(line)
			}
		}
		return b.String()
	}

	return status
}

func main() {
	root := &spfcbr.Command{
		Use:   "irccdctl [verb] [args...]",
		Short: "control-socket client for irccd",
		RunE:  run,
	}
	root.Flags().StringVarP(&socketPath, "socket", "s", "/var/run/irccd.sock", "control socket path")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ *spfcbr.Command, args []string) error {
	c, err := dial(socketPath)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", socketPath, err)
	}
	defer c.conn.Close()

	if _, ok := c.readLine(); !ok { // protocol greeting
		return fmt.Errorf("no greeting from %s", socketPath)
	}

	if len(args) > 0 {
		fmt.Println(c.send(strings.Join(args, " ")))
		return nil
	}

	runREPL(c)
	return nil
}

func runREPL(c *client) {
	executor := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}
		if line == "quit" || line == "exit" {
			os.Exit(0)
		}
		fmt.Println(c.send(line))
	}

	completer := func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(verbs, d.GetWordBeforeCursor(), true)
	}

	prompt.New(executor, completer, prompt.OptionPrefix("irccdctl> ")).Run()
}
