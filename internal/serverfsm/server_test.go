package serverfsm_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/irccd/internal/config"
	"github.com/sabouaram/irccd/internal/eventloop"
	"github.com/sabouaram/irccd/internal/irclog"
	"github.com/sabouaram/irccd/internal/serverfsm"
)

// harness wires a Server to one end of a net.Pipe() and exposes the
// other end so a spec can play the remote IRC server by hand.
type harness struct {
	loop   *eventloop.Loop
	server *serverfsm.Server
	remote net.Conn
	scan   *bufio.Scanner
	events chan serverfsm.Event
}

func newHarness(cfg config.ServerConfig) *harness {
	local, remote := net.Pipe()

	loop := eventloop.New()
	events := make(chan serverfsm.Event, 64)

	srv := serverfsm.NewServer(cfg, irclog.New(io.Discard, irclog.InfoLevel), loop, func(e serverfsm.Event) {
		events <- e
	})
	srv.SetDialer(func(_ context.Context, _ string, _ int, _ bool) (net.Conn, error) {
		return local, nil
	})

	go loop.Run()

	return &harness{
		loop:   loop,
		server: srv,
		remote: remote,
		scan:   bufio.NewScanner(remote),
		events: events,
	}
}

func (h *harness) sendLine(line string) {
	_, _ = h.remote.Write([]byte(line + "\r\n"))
}

func (h *harness) nextLine() string {
	if !h.scan.Scan() {
		return ""
	}
	return h.scan.Text()
}

func (h *harness) close() {
	h.loop.Stop()
	_ = h.remote.Close()
}

func baseConfig() config.ServerConfig {
	return config.ServerConfig{
		ID:            "libera",
		Host:          "irc.example.test",
		Port:          6667,
		Nickname:      "bot",
		Username:      "bot",
		Realname:      "Bot",
		CommandPrefix: "!",
	}
}

var _ = Describe("Server", func() {
	var h *harness

	AfterEach(func() {
		h.close()
	})

	It("identifies with NICK/USER on connect and emits Connect on 001", func() {
		h = newHarness(baseConfig())
		h.server.Start(context.Background())

		Expect(h.nextLine()).To(Equal("NICK bot"))
		Expect(h.nextLine()).To(Equal("USER bot 0 * :Bot"))

		h.sendLine(":irc.example.test 001 bot :Welcome")

		var ev serverfsm.Event
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventConnect))
		Expect(h.server.State()).To(Equal(serverfsm.Connected))
	})

	It("auto-joins configured channels after welcome", func() {
		cfg := baseConfig()
		cfg.AutoJoin = []config.JoinSpec{{Channel: "#chan"}}
		h = newHarness(cfg)
		h.server.Start(context.Background())

		_ = h.nextLine() // NICK
		_ = h.nextLine() // USER
		h.sendLine(":irc.example.test 001 bot :Welcome")

		Expect(h.nextLine()).To(Equal("JOIN #chan"))
	})

	It("replies to PING with PONG at the front of the queue", func() {
		h = newHarness(baseConfig())
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")

		h.sendLine("PING :irc.example.test")
		Expect(h.nextLine()).To(Equal("PONG :irc.example.test"))
	})

	It("tracks channel membership and emits Join/Part events", func() {
		h = newHarness(baseConfig())
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")

		h.sendLine(":bot!u@h JOIN #chan")
		var ev serverfsm.Event
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventConnect))

		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventJoin))
		Expect(ev.Channel).To(Equal("#chan"))
		Eventually(h.server.Channels, time.Second).Should(ContainElement("#chan"))

		h.sendLine(":alice!u@h JOIN #chan")
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventJoin))

		h.sendLine(":alice!u@h PART #chan :bye")
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventPart))
		Expect(ev.Origin).To(Equal("alice!u@h"))
	})

	It("auto-rejoins when kicked and AutoRejoinOnKick is set", func() {
		cfg := baseConfig()
		cfg.AutoRejoinOnKick = true
		h = newHarness(cfg)
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")
		drainEvent(h) // Connect

		h.sendLine(":bot!u@h JOIN #chan")
		drainEvent(h) // Join

		h.sendLine(":op!u@h KICK #chan bot :bye")
		drainEvent(h) // Kick

		Expect(h.nextLine()).To(Equal("JOIN #chan"))
	})

	It("emits a plain Message event even when the text starts with a command prefix", func() {
		// Command-prefix parsing is the dispatcher's job (§4.7), not
		// the server state machine's: the Message event must still
		// reach every plugin regardless of its text.
		h = newHarness(baseConfig())
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")
		drainEvent(h) // Connect

		h.sendLine(":alice!u@h PRIVMSG #chan :!echo hello world")
		var ev serverfsm.Event
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventMessage))
		Expect(ev.Text).To(Equal("!echo hello world"))
	})

	It("accumulates NAMES across multiple 353 lines into one Names event", func() {
		h = newHarness(baseConfig())
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")
		drainEvent(h) // Connect

		h.sendLine(":irc.example.test 005 bot PREFIX=(ov)@+ :are supported by this server")
		h.sendLine(":irc.example.test 353 bot = #chan :bot @op")
		h.sendLine(":irc.example.test 353 bot = #chan :+voiced")
		h.sendLine(":irc.example.test 366 bot #chan :End of /NAMES list.")

		var ev serverfsm.Event
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventNames))
		Expect(ev.Names).To(ConsistOf("bot", "op", "voiced"))
	})

	It("accumulates a WHOIS across 311/312/317/319/318 into one Whois event", func() {
		h = newHarness(baseConfig())
		h.server.Start(context.Background())
		_ = h.nextLine()
		_ = h.nextLine()
		h.sendLine(":irc.example.test 001 bot :Welcome")
		drainEvent(h) // Connect

		h.sendLine(":irc.example.test 005 bot PREFIX=(ov)@+ :are supported by this server")
		h.sendLine(":irc.example.test 311 bot alice ident host * :Alice Realname")
		h.sendLine(":irc.example.test 312 bot alice irc.example.test :Example IRC Server")
		h.sendLine(":irc.example.test 317 bot alice 120 1700000000 :seconds idle, signon time")
		h.sendLine(":irc.example.test 319 bot alice :#chan @#other")
		h.sendLine(":irc.example.test 318 bot alice :End of /WHOIS list.")

		var ev serverfsm.Event
		Eventually(h.events, time.Second).Should(Receive(&ev))
		Expect(ev.Kind).To(Equal(serverfsm.EventWhois))
		Expect(ev.Whois.Nick).To(Equal("alice"))
		Expect(ev.Whois.Realname).To(Equal("Alice Realname"))
		Expect(ev.Whois.Server).To(Equal("irc.example.test"))
		Expect(ev.Whois.Idle).To(Equal(120))
		Expect(ev.Whois.Channels).To(ConsistOf("#chan", "#other"))
	})
})

func drainEvent(h *harness) {
	Eventually(h.events, time.Second).Should(Receive())
}
