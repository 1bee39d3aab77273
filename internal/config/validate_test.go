package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Servers: []config.ServerConfig{{ID: "freenode", Host: "irc.freenode.net", Port: 6697, TLS: true}},
		Plugins: []config.PluginConfig{{ID: "echo", Path: "/plugins/echo.lua"}},
		Hooks:   []config.HookConfig{{Name: "log-join", Command: "/usr/bin/log-join"}},
		Rules:   []config.RuleConfig{{Action: "accept"}},
		Control: config.ControlConfig{Path: "/run/irccd.sock"},
	}
}

var _ = Describe("Config.Validate", func() {
	It("accepts a well-formed config", func() {
		Expect(validConfig().Validate()).To(BeNil())
	})

	It("rejects duplicate server ids", func() {
		c := validConfig()
		c.Servers = append(c.Servers, config.ServerConfig{ID: "freenode"})

		err := c.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("duplicate server id"))
	})

	It("rejects duplicate plugin ids", func() {
		c := validConfig()
		c.Plugins = append(c.Plugins, config.PluginConfig{ID: "echo"})

		err := c.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("duplicate plugin id"))
	})

	It("rejects duplicate hook names", func() {
		c := validConfig()
		c.Hooks = append(c.Hooks, config.HookConfig{Name: "log-join"})

		err := c.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("duplicate hook name"))
	})

	It("rejects a rule whose action is neither accept nor drop", func() {
		c := validConfig()
		c.Rules = []config.RuleConfig{{Action: "maybe"}}

		err := c.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("action must be"))
	})

	It("rejects a missing control socket path", func() {
		c := validConfig()
		c.Control.Path = ""

		err := c.Validate()
		Expect(err).ToNot(BeNil())
		Expect(err.Error()).To(ContainSubstring("control socket path"))
	})
})
