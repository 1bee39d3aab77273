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

package engine

import "github.com/sabouaram/irccd/internal/rulechain"

// RuleAdd implements ctlsocket.Backend (§4.6 RULE-ADD).
func (e *Engine) RuleAdd(rule rulechain.Rule, index int) error {
	return e.chain.Add(rule, index)
}

// RuleEdit implements ctlsocket.Backend (§4.6 RULE-EDIT).
func (e *Engine) RuleEdit(index int, edit rulechain.Edit) error {
	return e.chain.Edit(index, edit)
}

// RuleList implements ctlsocket.Backend (§4.6 RULE-LIST).
func (e *Engine) RuleList() []rulechain.Rule {
	return e.chain.Rules()
}

// RuleMove implements ctlsocket.Backend (§4.6 RULE-MOVE).
func (e *Engine) RuleMove(from, to int) error {
	return e.chain.Move(from, to)
}

// RuleRemove implements ctlsocket.Backend (§4.6 RULE-REMOVE).
func (e *Engine) RuleRemove(index int) error {
	return e.chain.Remove(index)
}
