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
	"github.com/sabouaram/irccd/internal/pluginhost"
	"github.com/sabouaram/irccd/internal/rulechain"
)

// ChannelInfo is one joined channel as reported by SERVER-INFO: its
// name and the membership-mode symbol for every member currently in
// it.
type ChannelInfo struct {
	Name    string
	Members map[string]byte
}

// ServerInfo is the SERVER-INFO response body (§4.6).
type ServerInfo struct {
	ID       string
	Nickname string
	State    string
	Channels []ChannelInfo
}

// Backend is everything a verb handler needs from the rest of the
// engine. ctlsocket never reaches into serverfsm.Server, pluginhost.Host
// or rulechain.Chain directly — the engine implements Backend once,
// wiring each verb to the right component, the same separation the
// teacher draws between an httpserver.Server's transport/lifecycle and
// the http.Handler it is handed to run.
type Backend interface {
	HookAdd(name, command string) error
	HookList() []string
	HookRemove(name string) error

	PluginConfigGet(id, key string) (string, bool, error)
	PluginConfigSet(id, key, value string) error
	PluginConfigList(id string) (map[string]string, error)
	PluginPathGet(id, key string) (string, bool, error)
	PluginPathSet(id, key, value string) error
	PluginPathList(id string) (map[string]string, error)
	PluginTemplateGet(id, key string) (string, bool, error)
	PluginTemplateSet(id, key, value string) error
	PluginTemplateList(id string) (map[string]string, error)
	PluginInfo(id string) (pluginhost.Metadata, error)
	PluginList() []string
	PluginLoad(id string) error
	PluginReload(id string) error
	PluginUnload(id string) error

	RuleAdd(rule rulechain.Rule, index int) error
	RuleEdit(index int, edit rulechain.Edit) error
	RuleList() []rulechain.Rule
	RuleMove(from, to int) error
	RuleRemove(index int) error

	ServerConnect(id, host string, port int, useTLS bool, nick, user, realname string) error
	ServerDisconnect(id string) error
	ServerInfo(id string) (ServerInfo, error)
	ServerInvite(id, channel, target string) error
	ServerJoin(id, channel, password string) error
	ServerKick(id, channel, target, reason string) error
	ServerList() []string
	ServerMe(id, target, message string) error
	ServerMessage(id, target, message string) error
	ServerMode(id, channel, mode string, args []string) error
	ServerNotice(id, target, message string) error
	ServerPart(id, channel, reason string) error
	ServerReconnect(id string) error
	ServerTopic(id, channel, topic string) error
}
