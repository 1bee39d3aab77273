package engine_test

import (
	"bufio"
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/engine"
	"github.com/sabouaram/irccd/internal/irclog"
)

type controlHarness struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func dialControl(path string) *controlHarness {
	var conn net.Conn
	var err error

	Eventually(func() error {
		conn, err = net.Dial("unix", path)
		return err
	}, time.Second, 10*time.Millisecond).Should(Succeed())

	return &controlHarness{conn: conn, scanner: bufio.NewScanner(conn)}
}

func (h *controlHarness) send(line string) {
	_, _ = h.conn.Write([]byte(line + "\n"))
}

func (h *controlHarness) recvLine() string {
	Expect(h.scanner.Scan()).To(BeTrue())
	return h.scanner.Text()
}

var _ = Describe("Engine", func() {
	var (
		dir  string
		sock string
		eng  *engine.Engine
		done chan struct{}
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "irccd-engine")
		Expect(err).To(BeNil())
		sock = filepath.Join(dir, "irccd.sock")

		cfg := config.Config{
			Hooks: []config.HookConfig{
				{Name: "notify", Command: "/bin/true"},
			},
			Rules: []config.RuleConfig{
				{Action: "drop", Plugins: []string{"quiet"}},
			},
			Control: config.ControlConfig{Path: sock},
		}

		eng = engine.New(cfg, irclog.New(&bytes.Buffer{}, irclog.DebugLevel))

		done = make(chan struct{})
		go func() {
			defer close(done)
			_ = eng.Start(context.Background())
		}()
	})

	AfterEach(func() {
		eng.Stop()
		Eventually(done, 7*time.Second).Should(BeClosed())
		_ = os.RemoveAll(dir)
	})

	It("seeds configured hooks and exposes them over the control socket", func() {
		h := dialControl(sock)
		h.recvLine() // greeting

		h.send("HOOK-LIST")
		Expect(h.recvLine()).To(ContainSubstring("notify"))
	})

	It("seeds configured rules and exposes them over the control socket", func() {
		h := dialControl(sock)
		h.recvLine()

		h.send("RULE-LIST")
		Expect(h.recvLine()).To(ContainSubstring("1"))
	})

	It("rejects HOOK-ADD for a name that already exists", func() {
		h := dialControl(sock)
		h.recvLine()

		h.send("HOOK-ADD notify /bin/false")
		Expect(h.recvLine()).To(ContainSubstring("ERR"))
	})

	It("reports an empty server list before any SERVER-CONNECT", func() {
		h := dialControl(sock)
		h.recvLine()

		h.send("SERVER-LIST")
		Expect(h.recvLine()).To(Equal("OK"))
	})
})
