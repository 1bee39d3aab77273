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

package dispatcher

import (
	"context"
	"os/exec"

	"github.com/sabouaram/irccd/internal/irclog"
)

// Hook is a named external command spawned per surviving event (§3
// Hook, GLOSSARY). It consumes no return value and is enumerated by
// name only; ordering between hooks is not observable.
type Hook struct {
	name    string
	command string
	args    []string
}

// NewHook builds a Hook from its configured name, command, and fixed
// leading arguments (§3 Hook; internal/config.HookConfig).
func NewHook(name, command string, args []string) *Hook {
	return &Hook{name: name, command: command, args: append([]string{}, args...)}
}

// Name identifies the hook for HOOK-LIST/HOOK-REMOVE.
func (h *Hook) Name() string { return h.name }

// Command returns the external command path the hook spawns.
func (h *Hook) Command() string { return h.command }

// Spawn runs the hook's command with its configured args followed by
// eventFields, without awaiting exit (§4.7 step 2: "do not await
// exit"). Stdout/stderr are not collected (GLOSSARY: "its
// stdout/stderr are ignored"). A failure to start the process is
// logged and otherwise has no effect on dispatch.
func (h *Hook) Spawn(ctx context.Context, log irclog.Logger, eventFields []string) {
	args := make([]string, 0, len(h.args)+len(eventFields))
	args = append(args, h.args...)
	args = append(args, eventFields...)

	cmd := exec.CommandContext(ctx, h.command, args...)
	if err := cmd.Start(); err != nil {
		log.WithFields(irclog.Fields{"hook": h.name, "command": h.command}).Errorf("hook spawn failed: %v", err)
		return
	}

	go func() {
		_ = cmd.Wait()
	}()
}
