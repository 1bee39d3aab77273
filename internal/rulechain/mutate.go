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

package rulechain

import "github.com/sabouaram/irccd/internal/ircerr"

const (
	errIndexOutOfRange = ircerr.MinPkgRuleChain + iota
	errUnknownSetKey
)

// SetOp is one "<key><+|-><value>" token of a RULE-EDIT verb line (§4.6,
// §9 Open Questions — the grammar is preserved verbatim for wire
// compatibility: 's'ervers, 'c'hannels, 'o'rigins, 'p'lugins, 'e'vents).
type SetOp struct {
	Key   byte
	Add   bool
	Value string
}

// Edit describes a RULE-EDIT mutation: an optional new Action plus an
// ordered list of set add/remove operations.
type Edit struct {
	Action *Action
	SetOps []SetOp
}

// Chain is the ordered, index-addressed list of Rules a control-socket
// session mutates (§4.4). It is not safe for concurrent use without
// external synchronization — callers are expected to run it on the
// engine's single dispatch thread, same as every other dispatcher
// component.
type Chain struct {
	rules []Rule
}

// NewChain returns a Chain seeded with the given rules, in order.
func NewChain(rules []Rule) *Chain {
	c := &Chain{}
	c.rules = append(c.rules, rules...)
	return c
}

// Rules returns a snapshot of the chain in order.
func (c *Chain) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Len reports the number of rules in the chain.
func (c *Chain) Len() int { return len(c.rules) }

// Evaluate runs Evaluate against the chain's current rules.
func (c *Chain) Evaluate(ev MatchEvent, pluginID string) Action {
	return Evaluate(c.rules, ev, pluginID)
}

// Add inserts rule at index (RULE-ADD's "i=index"), or appends it when
// index is negative.
func (c *Chain) Add(rule Rule, index int) error {
	if index < 0 || index >= len(c.rules) {
		c.rules = append(c.rules, rule)
		return nil
	}

	c.rules = append(c.rules, Rule{})
	copy(c.rules[index+1:], c.rules[index:])
	c.rules[index] = rule

	return nil
}

// Move relocates the rule at from to position to (RULE-MOVE).
func (c *Chain) Move(from, to int) error {
	if from < 0 || from >= len(c.rules) {
		return ircerr.New(errIndexOutOfRange, "rule index out of range")
	}
	if to < 0 || to >= len(c.rules) {
		return ircerr.New(errIndexOutOfRange, "rule index out of range")
	}

	r := c.rules[from]
	c.rules = append(c.rules[:from], c.rules[from+1:]...)

	c.rules = append(c.rules, Rule{})
	copy(c.rules[to+1:], c.rules[to:])
	c.rules[to] = r

	return nil
}

// Remove deletes the rule at index (RULE-REMOVE).
func (c *Chain) Remove(index int) error {
	if index < 0 || index >= len(c.rules) {
		return ircerr.New(errIndexOutOfRange, "rule index out of range")
	}

	c.rules = append(c.rules[:index], c.rules[index+1:]...)
	return nil
}

// Edit mutates the action and/or set membership of the rule at index
// (RULE-EDIT).
func (c *Chain) Edit(index int, e Edit) error {
	if index < 0 || index >= len(c.rules) {
		return ircerr.New(errIndexOutOfRange, "rule index out of range")
	}

	r := &c.rules[index]
	if e.Action != nil {
		r.Action = *e.Action
	}

	for _, op := range e.SetOps {
		if err := applySetOp(r, op); err != nil {
			return err
		}
	}

	return nil
}

func setField(r *Rule, key byte) *[]string {
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

func applySetOp(r *Rule, op SetOp) error {
	field := setField(r, op.Key)
	if field == nil {
		return ircerr.New(errUnknownSetKey, "unknown rule set key")
	}

	if op.Add {
		for _, v := range *field {
			if v == op.Value {
				return nil
			}
		}
		*field = append(*field, op.Value)
		return nil
	}

	for i, v := range *field {
		if v == op.Value {
			*field = append((*field)[:i], (*field)[i+1:]...)
			return nil
		}
	}

	return nil
}
