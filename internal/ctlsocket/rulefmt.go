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

package ctlsocket

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sabouaram/irccd/internal/rulechain"
)

// parseRuleAdd parses a RULE-ADD argument line: "accept|drop
// [s=val|c=val|o=val|p=val|e=val|i=index ...]" (§4.6). Each key may
// repeat to add more than one value to its set; i=index is consumed
// separately and returned, defaulting to -1 (append) if absent.
func parseRuleAdd(rest string) (rulechain.Rule, int, error) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return rulechain.Rule{}, -1, fmt.Errorf("missing action")
	}

	var rule rulechain.Rule
	switch fields[0] {
	case "accept":
		rule.Action = rulechain.Accept
	case "drop":
		rule.Action = rulechain.Drop
	default:
		return rulechain.Rule{}, -1, fmt.Errorf("invalid action")
	}

	index := -1

	for _, token := range fields[1:] {
		if len(token) < 2 || token[1] != '=' {
			return rulechain.Rule{}, -1, fmt.Errorf("invalid token %q", token)
		}

		key, value := token[0], token[2:]
		if key == 'i' {
			n, err := strconv.Atoi(value)
			if err != nil {
				return rulechain.Rule{}, -1, fmt.Errorf("invalid index %q", value)
			}
			index = n
			continue
		}

		field := ruleField(&rule, key)
		if field == nil {
			return rulechain.Rule{}, -1, fmt.Errorf("unknown key %q", string(key))
		}
		*field = append(*field, value)
	}

	return rule, index, nil
}

// parseRuleEdit parses a RULE-EDIT argument line's token list (the
// index itself is parsed by the caller): each token is either
// "a=accept|drop" or "<c|s|o|p|e><+|-><value>".
func parseRuleEdit(rest string) (rulechain.Edit, error) {
	var edit rulechain.Edit

	for _, token := range strings.Fields(rest) {
		if len(token) < 2 {
			return rulechain.Edit{}, fmt.Errorf("invalid token %q", token)
		}

		key, attr, value := token[0], token[1], token[2:]

		if key == 'a' {
			if attr != '=' {
				return rulechain.Edit{}, fmt.Errorf("invalid token %q", token)
			}
			var action rulechain.Action
			switch value {
			case "accept":
				action = rulechain.Accept
			case "drop":
				action = rulechain.Drop
			default:
				return rulechain.Edit{}, fmt.Errorf("invalid action %q", value)
			}
			edit.Action = &action
			continue
		}

		var add bool
		switch attr {
		case '+':
			add = true
		case '-':
			add = false
		default:
			return rulechain.Edit{}, fmt.Errorf("invalid token %q", token)
		}

		edit.SetOps = append(edit.SetOps, rulechain.SetOp{Key: key, Add: add, Value: value})
	}

	return edit, nil
}

func ruleField(r *rulechain.Rule, key byte) *[]string {
	switch key {
	case 's':
		return &r.Servers
	case 'c':
		return &r.Channels
	case 'o':
		return &r.Origins
	case 'p':
		return &r.Plugins
	case 'e':
		return &r.Events
	default:
		return nil
	}
}

// formatRuleList renders the RULE-LIST payload: "OK <count>" followed
// by six lines per rule (action, then each of the five space-joined
// sets) — the same per-rule block shape as the original line protocol.
func formatRuleList(rules []rulechain.Rule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "OK %d", len(rules))
	for _, r := range rules {
		b.WriteByte('\n')
		b.WriteString(r.Action.String())
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.Servers, " "))
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.Channels, " "))
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.Origins, " "))
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.Plugins, " "))
		b.WriteByte('\n')
		b.WriteString(strings.Join(r.Events, " "))
	}

	return b.String()
}
