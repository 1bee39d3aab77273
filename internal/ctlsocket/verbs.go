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
	"strconv"
	"strings"
)

// buildVerbTable wires every verb from the §4.6 table to a handler
// that parses its args and calls the matching Backend method. Args
// parsing follows the same "last field may contain embedded spaces"
// rule throughout (splitArgs' n parameter).
func (s *Server) buildVerbTable() map[string]verbFunc {
	return map[string]verbFunc{
		"HOOK-ADD":    verbHookAdd,
		"HOOK-LIST":   verbHookList,
		"HOOK-REMOVE": verbHookRemove,

		"PLUGIN-CONFIG":   verbPluginConfig,
		"PLUGIN-INFO":     verbPluginInfo,
		"PLUGIN-LIST":     verbPluginList,
		"PLUGIN-LOAD":     verbPluginLoad,
		"PLUGIN-PATH":     verbPluginPath,
		"PLUGIN-RELOAD":   verbPluginReload,
		"PLUGIN-TEMPLATE": verbPluginTemplate,
		"PLUGIN-UNLOAD":   verbPluginUnload,

		"RULE-ADD":    verbRuleAdd,
		"RULE-EDIT":   verbRuleEdit,
		"RULE-LIST":   verbRuleList,
		"RULE-MOVE":   verbRuleMove,
		"RULE-REMOVE": verbRuleRemove,

		"SERVER-CONNECT":    verbServerConnect,
		"SERVER-DISCONNECT": verbServerDisconnect,
		"SERVER-INFO":       verbServerInfo,
		"SERVER-INVITE":     verbServerInvite,
		"SERVER-JOIN":       verbServerJoin,
		"SERVER-KICK":       verbServerKick,
		"SERVER-LIST":       verbServerList,
		"SERVER-ME":         verbServerMe,
		"SERVER-MESSAGE":    verbServerMessage,
		"SERVER-MODE":       verbServerMode,
		"SERVER-NOTICE":     verbServerNotice,
		"SERVER-PART":       verbServerPart,
		"SERVER-RECONNECT":  verbServerReconnect,
		"SERVER-TOPIC":      verbServerTopic,
	}
}

func verbHookAdd(s *Server, rest string) string {
	args := splitArgs(rest, 2)
	if len(args) != 2 {
		return errf("usage: HOOK-ADD name path")
	}
	if err := s.backend.HookAdd(args[0], args[1]); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbHookList(s *Server, _ string) string {
	names := s.backend.HookList()
	return okNames(names)
}

func verbHookRemove(s *Server, rest string) string {
	if rest == "" {
		return errf("usage: HOOK-REMOVE name")
	}
	if err := s.backend.HookRemove(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

// kvVerb implements the shared "id [key [value]]" shape behind
// PLUGIN-CONFIG/PLUGIN-PATH/PLUGIN-TEMPLATE: no key lists every
// key=value pair, a key with no value gets it, key+value sets it.
func kvVerb(rest string,
	get func(id, key string) (string, bool, error),
	set func(id, key, value string) error,
	list func(id string) (map[string]string, error),
) string {
	args := splitArgs(rest, 3)
	if len(args) == 0 {
		return errf("usage: id [key [value]]")
	}
	id := args[0]

	switch len(args) {
	case 1:
		m, err := list(id)
		if err != nil {
			return errf("%s", err)
		}
		var b strings.Builder
		for k, v := range m {
			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(v)
			b.WriteByte('\n')
		}
		return okList(len(m), strings.TrimSuffix(b.String(), "\n"))

	case 2:
		v, found, err := get(id, args[1])
		if err != nil {
			return errf("%s", err)
		}
		if !found {
			return errf("no such key")
		}
		return okList(1, args[1]+"="+v)

	default:
		if err := set(id, args[1], args[2]); err != nil {
			return errf("%s", err)
		}
		return ok()
	}
}

func verbPluginConfig(s *Server, rest string) string {
	return kvVerb(rest, s.backend.PluginConfigGet, s.backend.PluginConfigSet, s.backend.PluginConfigList)
}

func verbPluginPath(s *Server, rest string) string {
	return kvVerb(rest, s.backend.PluginPathGet, s.backend.PluginPathSet, s.backend.PluginPathList)
}

func verbPluginTemplate(s *Server, rest string) string {
	return kvVerb(rest, s.backend.PluginTemplateGet, s.backend.PluginTemplateSet, s.backend.PluginTemplateList)
}

func verbPluginInfo(s *Server, rest string) string {
	if rest == "" {
		return errf("usage: PLUGIN-INFO id")
	}
	meta, err := s.backend.PluginInfo(rest)
	if err != nil {
		return errf("%s", err)
	}
	return okList(1, joinFields(meta.Author, meta.License, meta.Summary, meta.Version))
}

func verbPluginList(s *Server, _ string) string {
	ids := s.backend.PluginList()
	return okNames(ids)
}

func verbPluginLoad(s *Server, rest string) string {
	if rest == "" {
		return errf("usage: PLUGIN-LOAD id")
	}
	if err := s.backend.PluginLoad(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbPluginReload(s *Server, rest string) string {
	if err := s.backend.PluginReload(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbPluginUnload(s *Server, rest string) string {
	if err := s.backend.PluginUnload(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbRuleAdd(s *Server, rest string) string {
	rule, index, err := parseRuleAdd(rest)
	if err != nil {
		return errf("%s", err)
	}
	if err := s.backend.RuleAdd(rule, index); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbRuleEdit(s *Server, rest string) string {
	args := splitArgs(rest, 2)
	if len(args) == 0 {
		return errf("usage: RULE-EDIT index ...")
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errf("invalid index")
	}

	tail := ""
	if len(args) == 2 {
		tail = args[1]
	}

	edit, err := parseRuleEdit(tail)
	if err != nil {
		return errf("%s", err)
	}
	if err := s.backend.RuleEdit(index, edit); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbRuleList(s *Server, _ string) string {
	rules := s.backend.RuleList()
	return formatRuleList(rules)
}

func verbRuleMove(s *Server, rest string) string {
	args := splitArgs(rest, 2)
	if len(args) != 2 {
		return errf("usage: RULE-MOVE from to")
	}
	from, err1 := strconv.Atoi(args[0])
	to, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return errf("invalid index")
	}
	if err := s.backend.RuleMove(from, to); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbRuleRemove(s *Server, rest string) string {
	index, err := strconv.Atoi(rest)
	if err != nil {
		return errf("invalid index")
	}
	if err := s.backend.RuleRemove(index); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerConnect(s *Server, rest string) string {
	args := splitArgs(rest, 6)
	if len(args) != 6 {
		return errf("usage: SERVER-CONNECT id host [+]port nick user realname")
	}

	id, host, portArg, nick, user, realname := args[0], args[1], args[2], args[3], args[4], args[5]

	useTLS := strings.HasPrefix(portArg, "+")
	portArg = strings.TrimPrefix(portArg, "+")
	port, err := strconv.Atoi(portArg)
	if err != nil {
		return errf("invalid port")
	}

	if err := s.backend.ServerConnect(id, host, port, useTLS, nick, user, realname); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerDisconnect(s *Server, rest string) string {
	if err := s.backend.ServerDisconnect(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerInfo(s *Server, rest string) string {
	if rest == "" {
		return errf("usage: SERVER-INFO id")
	}
	info, err := s.backend.ServerInfo(rest)
	if err != nil {
		return errf("%s", err)
	}

	var b strings.Builder
	b.WriteString(joinFields(info.ID, info.Nickname, info.State))
	for _, ch := range info.Channels {
		b.WriteByte('\n')
		b.WriteString(ch.Name)
		for nick, mode := range ch.Members {
			b.WriteByte(' ')
			if mode != 0 {
				b.WriteByte(mode)
			}
			b.WriteString(nick)
		}
	}

	return okList(1+len(info.Channels), b.String())
}

func verbServerInvite(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) != 3 {
		return errf("usage: SERVER-INVITE id channel target")
	}
	if err := s.backend.ServerInvite(args[0], args[1], args[2]); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerJoin(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) < 2 {
		return errf("usage: SERVER-JOIN id channel [password]")
	}
	password := ""
	if len(args) == 3 {
		password = args[2]
	}
	if err := s.backend.ServerJoin(args[0], args[1], password); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerKick(s *Server, rest string) string {
	args := splitArgs(rest, 4)
	if len(args) < 3 {
		return errf("usage: SERVER-KICK id channel target [reason]")
	}
	reason := ""
	if len(args) == 4 {
		reason = args[3]
	}
	if err := s.backend.ServerKick(args[0], args[1], args[2], reason); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerList(s *Server, _ string) string {
	ids := s.backend.ServerList()
	return okNames(ids)
}

func verbServerMe(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) != 3 {
		return errf("usage: SERVER-ME id target message")
	}
	if err := s.backend.ServerMe(args[0], args[1], args[2]); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerMessage(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) != 3 {
		return errf("usage: SERVER-MESSAGE id target message")
	}
	if err := s.backend.ServerMessage(args[0], args[1], args[2]); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerMode(s *Server, rest string) string {
	args := splitArgs(rest, 4)
	if len(args) < 3 {
		return errf("usage: SERVER-MODE id channel mode [args]")
	}
	var modeArgs []string
	if len(args) == 4 {
		modeArgs = strings.Fields(args[3])
	}
	if err := s.backend.ServerMode(args[0], args[1], args[2], modeArgs); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerNotice(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) != 3 {
		return errf("usage: SERVER-NOTICE id target message")
	}
	if err := s.backend.ServerNotice(args[0], args[1], args[2]); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerPart(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) < 2 {
		return errf("usage: SERVER-PART id channel [reason]")
	}
	reason := ""
	if len(args) == 3 {
		reason = args[2]
	}
	if err := s.backend.ServerPart(args[0], args[1], reason); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerReconnect(s *Server, rest string) string {
	if err := s.backend.ServerReconnect(rest); err != nil {
		return errf("%s", err)
	}
	return ok()
}

func verbServerTopic(s *Server, rest string) string {
	args := splitArgs(rest, 3)
	if len(args) != 3 {
		return errf("usage: SERVER-TOPIC id channel topic")
	}
	if err := s.backend.ServerTopic(args[0], args[1], args[2]); err != nil {
		return errf("%s", err)
	}
	return ok()
}
