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

// Package rulechain holds the engine's ordered Accept/Drop filter
// (§4.4): pure matching plus index-addressed mutation, kept separate
// from the Dispatcher so the matching logic is testable without a
// running engine.
package rulechain

// Action is a Rule's decision when it matches an event.
type Action int

const (
	Accept Action = iota
	Drop
)

func (a Action) String() string {
	if a == Drop {
		return "drop"
	}
	return "accept"
}

// Rule is one entry of the ordered chain (§3 Rule). An empty set for
// any of the five dimensions is a wildcard for that dimension.
type Rule struct {
	Action   Action
	Servers  []string
	Channels []string
	Origins  []string
	Plugins  []string
	Events   []string
}

// MatchEvent is the minimal view of a serverfsm.Event the chain needs
// to evaluate a Rule, kept independent of the serverfsm package so
// rulechain has no import-time dependency on it.
type MatchEvent struct {
	ServerID string
	Channel  string
	Origin   string
	Kind     string
}

func setMatches(set []string, value string) bool {
	if len(set) == 0 {
		return true
	}

	for _, s := range set {
		if s == value {
			return true
		}
	}

	return false
}

// matches reports whether r applies to ev for the given plugin id.
// Plugin matching is evaluated per plugin during fan-out (§4.7); an
// empty pluginID means "no plugin context" (e.g. a control-socket
// watcher) and only matches rules with an empty Plugins set.
func (r Rule) matches(ev MatchEvent, pluginID string) bool {
	return setMatches(r.Servers, ev.ServerID) &&
		setMatches(r.Channels, ev.Channel) &&
		setMatches(r.Origins, originNick(ev.Origin)) &&
		setMatches(r.Events, ev.Kind) &&
		setMatches(r.Plugins, pluginID)
}

// originNick strips the user/host part of a "nick!user@host" origin
// for Origins matching (§4.4: "Origin matching strips user/host").
func originNick(origin string) string {
	for i := 0; i < len(origin); i++ {
		if origin[i] == '!' {
			return origin[:i]
		}
	}

	return origin
}

// Evaluate walks rules in order and returns the action of the last
// matching rule, or Accept if none match (§4.4).
func Evaluate(rules []Rule, ev MatchEvent, pluginID string) Action {
	decision := Accept

	for _, r := range rules {
		if r.matches(ev, pluginID) {
			decision = r.Action
		}
	}

	return decision
}
