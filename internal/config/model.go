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

// Package config holds the engine's data-model records (§3) and a thin
// convenience loader on top of them. The external, token-based
// configuration grammar described in §6 stays an external concern — this
// package only defines the records the engine needs once that grammar
// has been parsed into them, plus a YAML rendering for standalone runs.
package config

// JoinSpec is one entry of a Server's auto-join list.
type JoinSpec struct {
	Channel  string `mapstructure:"channel" yaml:"channel"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// ServerConfig is the on-disk/in-memory record for one IRC network (§3
// Server). Runtime state (the §4.3 state machine's current state,
// channel set, queue) is not part of this record — it lives on the
// running serverfsm.Server this config seeds.
type ServerConfig struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`

	Nickname string `mapstructure:"nickname" yaml:"nickname"`
	Username string `mapstructure:"username" yaml:"username"`
	Realname string `mapstructure:"realname" yaml:"realname"`

	CommandPrefix string `mapstructure:"command_prefix" yaml:"command_prefix"`

	AutoJoin []JoinSpec `mapstructure:"auto_join" yaml:"auto_join,omitempty"`
	CTCP     map[string]string `mapstructure:"ctcp" yaml:"ctcp,omitempty"`

	AutoRejoinOnKick bool `mapstructure:"auto_rejoin_on_kick" yaml:"auto_rejoin_on_kick"`
	AutoJoinOnInvite bool `mapstructure:"auto_join_on_invite" yaml:"auto_join_on_invite"`

	// RateLimit is the maximum number of outbound lines per second the
	// per-server command queue (§4.2) drains at. Left as an
	// implementer's choice by §9; zero means the linecodec default.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit,omitempty"`

	// ReconnectBaseSeconds/ReconnectCapSeconds parametrize the §4.3
	// Reconnecting backoff: wait min(base * 2^n, cap) seconds. Zero
	// values fall back to serverfsm's defaults.
	ReconnectBaseSeconds float64 `mapstructure:"reconnect_base_seconds" yaml:"reconnect_base_seconds,omitempty"`
	ReconnectCapSeconds  float64 `mapstructure:"reconnect_cap_seconds" yaml:"reconnect_cap_seconds,omitempty"`

	// ReconnectMaxRetries caps the retry counter; once exhausted the
	// server remains Disconnected until an operator SERVER-CONNECT or
	// SERVER-RECONNECT command is issued (§4.3). Zero means unlimited.
	ReconnectMaxRetries int `mapstructure:"reconnect_max_retries" yaml:"reconnect_max_retries,omitempty"`
}

// PluginConfig is the on-disk record for one loaded Plugin (§3 Plugin).
type PluginConfig struct {
	ID       string            `mapstructure:"id" yaml:"id"`
	Path     string            `mapstructure:"path" yaml:"path"`
	Author   string            `mapstructure:"author" yaml:"author,omitempty"`
	License  string            `mapstructure:"license" yaml:"license,omitempty"`
	Summary  string            `mapstructure:"summary" yaml:"summary,omitempty"`
	Version  string            `mapstructure:"version" yaml:"version,omitempty"`
	Options  map[string]string `mapstructure:"options" yaml:"options,omitempty"`
	Templates map[string]string `mapstructure:"templates" yaml:"templates,omitempty"`
	Paths    map[string]string `mapstructure:"paths" yaml:"paths,omitempty"`
}

// RuleConfig is the on-disk record for one Rule (§3 Rule, §4.4).
type RuleConfig struct {
	Action   string   `mapstructure:"action" yaml:"action"`
	Servers  []string `mapstructure:"servers" yaml:"servers,omitempty"`
	Channels []string `mapstructure:"channels" yaml:"channels,omitempty"`
	Origins  []string `mapstructure:"origins" yaml:"origins,omitempty"`
	Plugins  []string `mapstructure:"plugins" yaml:"plugins,omitempty"`
	Events   []string `mapstructure:"events" yaml:"events,omitempty"`
}

// HookConfig is the on-disk record for one Hook (§3 Hook).
type HookConfig struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args,omitempty"`
}

// ControlConfig configures the Unix-domain control socket (§4.6).
type ControlConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	Mode uint32 `mapstructure:"mode" yaml:"mode,omitempty"`
	Uid  int    `mapstructure:"uid" yaml:"uid,omitempty"`
	Gid  int    `mapstructure:"gid" yaml:"gid,omitempty"`
}

// Config is the root record the engine is constructed from.
type Config struct {
	Servers []ServerConfig `mapstructure:"servers" yaml:"servers,omitempty"`
	Plugins []PluginConfig `mapstructure:"plugins" yaml:"plugins,omitempty"`
	Rules   []RuleConfig   `mapstructure:"rules" yaml:"rules,omitempty"`
	Hooks   []HookConfig   `mapstructure:"hooks" yaml:"hooks,omitempty"`
	Control ControlConfig  `mapstructure:"control" yaml:"control"`
}
