package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/config"
)

const sampleYAML = `
servers:
  - id: freenode
    host: irc.freenode.net
    port: 6697
    tls: true
    nickname: irccd
    command_prefix: "!"
plugins:
  - id: echo
    path: /plugins/echo.lua
rules:
  - action: accept
control:
  path: /run/irccd.sock
`

var _ = Describe("Load", func() {
	It("parses a YAML file into Config and validates it", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "irccd.yaml")
		Expect(os.WriteFile(path, []byte(sampleYAML), 0o644)).To(Succeed())

		cfg, err := config.Load(path)
		Expect(err).To(BeNil())
		Expect(cfg.Servers).To(HaveLen(1))
		Expect(cfg.Servers[0].ID).To(Equal("freenode"))
		Expect(cfg.Servers[0].Port).To(Equal(6697))
		Expect(cfg.Control.Path).To(Equal("/run/irccd.sock"))
	})

	It("surfaces a validation error for malformed content", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "irccd.yaml")
		Expect(os.WriteFile(path, []byte("servers:\n  - id: a\ncontrol:\n  path: \"\"\n"), 0o644)).To(Succeed())

		_, err := config.Load(path)
		Expect(err).ToNot(BeNil())
	})

	It("reports an error for a missing file", func() {
		_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "does-not-exist.yaml"))
		Expect(err).ToNot(BeNil())
	})
})
