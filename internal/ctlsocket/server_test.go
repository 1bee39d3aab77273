package ctlsocket_test

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/ctlsocket"
	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

var _ ctlsocket.Backend = (*fakeBackend)(nil)

type clientHarness struct {
	conn    net.Conn
	scanner *bufio.Scanner
}

func dialControl(path string) *clientHarness {
	var conn net.Conn
	var err error

	Eventually(func() error {
		conn, err = net.Dial("unix", path)
		return err
	}, time.Second, 10*time.Millisecond).Should(Succeed())

	return &clientHarness{conn: conn, scanner: bufio.NewScanner(conn)}
}

func (h *clientHarness) send(line string) {
	_, _ = h.conn.Write([]byte(line + "\n"))
}

func (h *clientHarness) recvLine() string {
	Expect(h.scanner.Scan()).To(BeTrue())
	return h.scanner.Text()
}

var _ = Describe("Server", func() {
	var (
		dir     string
		backend *fakeBackend
		loop    *eventloop.Loop
		srv     *ctlsocket.Server
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "ctlsocket")
		Expect(err).To(BeNil())

		backend = newFakeBackend()
		loop = eventloop.New()
		go loop.Run()

		srv = ctlsocket.NewServer(
			config.ControlConfig{Path: filepath.Join(dir, "irccd.sock")},
			backend,
			irclog.New(&bytes.Buffer{}, irclog.DebugLevel),
			loop,
		)
		Expect(srv.Listen()).To(Succeed())
	})

	AfterEach(func() {
		_ = srv.Close()
		loop.Stop()
		_ = os.RemoveAll(dir)
	})

	It("greets with the protocol version on accept", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		Expect(h.recvLine()).To(Equal(fmt.Sprintf("IRCCD %d.%d.%d",
			ctlsocket.ProtocolVersion[0], ctlsocket.ProtocolVersion[1], ctlsocket.ProtocolVersion[2])))
	})

	It("runs HOOK-ADD then HOOK-LIST then HOOK-REMOVE", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("HOOK-ADD notify /usr/bin/notify-send")
		Expect(h.recvLine()).To(Equal("OK"))

		h.send("HOOK-LIST")
		Expect(h.recvLine()).To(Equal("OK notify"))

		h.send("HOOK-REMOVE notify")
		Expect(h.recvLine()).To(Equal("OK"))
	})

	It("returns ERROR for an unknown verb without closing the connection", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("NONSENSE")
		Expect(h.recvLine()).To(Equal("ERROR command not found"))

		h.send("HOOK-LIST")
		Expect(h.recvLine()).To(Equal("OK"))
	})

	It("loads a plugin via PLUGIN-LOAD and reports it via PLUGIN-LIST", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("PLUGIN-LOAD echo")
		Expect(h.recvLine()).To(Equal("OK"))

		h.send("PLUGIN-LIST")
		Expect(h.recvLine()).To(Equal("OK echo"))
	})

	It("adds, lists, and removes a rule", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("RULE-ADD drop c=#spam")
		Expect(h.recvLine()).To(Equal("OK"))

		h.send("RULE-LIST")
		Expect(h.recvLine()).To(Equal("OK 1"))
		Expect(h.recvLine()).To(Equal("drop"))  // action
		Expect(h.recvLine()).To(Equal(""))      // servers
		Expect(h.recvLine()).To(Equal("#spam")) // channels
		Expect(h.recvLine()).To(Equal(""))      // origins
		Expect(h.recvLine()).To(Equal(""))      // plugins
		Expect(h.recvLine()).To(Equal(""))      // events

		h.send("RULE-REMOVE 0")
		Expect(h.recvLine()).To(Equal("OK"))
	})

	It("connects a server via SERVER-CONNECT with a TLS port prefix", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("SERVER-CONNECT libera irc.example.test +6697 bot bot Bot")
		Expect(h.recvLine()).To(Equal("OK"))

		h.send("SERVER-LIST")
		Expect(h.recvLine()).To(Equal("OK libera"))
	})

	It("subscribes a peer to broadcast events with WATCH", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		h.send("WATCH")
		Expect(h.recvLine()).To(Equal("OK"))

		done := make(chan struct{})
		loop.PostFunc(func() {
			srv.Broadcast(serverfsm.Event{Kind: serverfsm.EventJoin, ServerID: "libera", Channel: "#chan", Origin: "alice!a@b"})
			close(done)
		})
		<-done

		Expect(h.recvLine()).To(Equal("JOIN libera alice!a@b #chan"))
	})

	It("does not broadcast to a peer that never sent WATCH", func() {
		h := dialControl(filepath.Join(dir, "irccd.sock"))
		h.recvLine()

		done := make(chan struct{})
		loop.PostFunc(func() {
			srv.Broadcast(serverfsm.Event{Kind: serverfsm.EventJoin, ServerID: "libera"})
			close(done)
		})
		<-done

		_ = h.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		Expect(h.scanner.Scan()).To(BeFalse())
	})
})
