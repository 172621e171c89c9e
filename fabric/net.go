package fabric

import (
	"fmt"
	"net"
	"net/rpc"
	"reflect"
	"sync"
	"time"
)

// FloatEnvelope is the wire representation of a float message delivered
// over the net/rpc transport. Exported (and gob-encodable) because net/rpc
// encodes arguments with encoding/gob by default.
type FloatEnvelope struct {
	From    int
	Tag     int
	Payload []float32
}

// IntEnvelope is the int-message analogue of FloatEnvelope.
type IntEnvelope struct {
	From    int
	Tag     int
	Payload []int32
}

// Ack is the empty RPC reply for delivery calls; net/rpc requires a reply
// argument even when there is nothing to report back.
type Ack struct{}

// NetFabric runs one rank per OS process, connected over TCP via net/rpc.
// Each rank both serves an inbox (receiving deliveries from peers) and
// dials out to peers (sending). This realizes an address-space-isolated,
// no-shared-memory process model.
type NetFabric struct {
	rank  int
	addrs []string
	start time.Time

	listener net.Listener
	server   *rpc.Server

	mu      sync.Mutex
	clients map[int]*rpc.Client

	floatIn []chan FloatEnvelope
	intIn   []chan IntEnvelope
}

// NewNetFabric listens on addrs[rank] and returns a Fabric ready to
// communicate with the peers at the other addresses. Peers need not be up
// yet: outbound calls dial lazily and retry up to 20 times, 50ms apart.
func NewNetFabric(rank int, addrs []string) (*NetFabric, error) {
	listener, err := net.Listen("tcp", addrs[rank])
	if err != nil {
		return nil, &Error{Rank: rank, Op: "listen", Err: err}
	}
	return newNetFabric(rank, addrs, listener), nil
}

// NewNetFabricListener is the lower-level constructor used by tests: it
// accepts a pre-bound listener (e.g. one created with "127.0.0.1:0" so the
// OS assigns a free port) instead of binding addrs[rank] itself.
func NewNetFabricListener(rank int, addrs []string, listener net.Listener) *NetFabric {
	return newNetFabric(rank, addrs, listener)
}

func newNetFabric(rank int, addrs []string, listener net.Listener) *NetFabric {
	procs := len(addrs)
	f := &NetFabric{
		rank:     rank,
		addrs:    addrs,
		start:    time.Now(),
		listener: listener,
		clients:  make(map[int]*rpc.Client),
		floatIn:  make([]chan FloatEnvelope, procs),
		intIn:    make([]chan IntEnvelope, procs),
	}
	for i := range procs {
		f.floatIn[i] = make(chan FloatEnvelope, inboxCapacity)
		f.intIn[i] = make(chan IntEnvelope, inboxCapacity)
	}

	f.server = rpc.NewServer()
	f.server.RegisterName("Inbox", &inbox{fab: f})
	go f.server.Accept(listener)

	return f
}

// Close shuts down the inbox listener and any outbound connections. Safe
// to call once after a run completes.
func (f *NetFabric) Close() error {
	f.mu.Lock()
	for _, c := range f.clients {
		c.Close()
	}
	f.mu.Unlock()
	return f.listener.Close()
}

func (f *NetFabric) Rank() int { return f.rank }
func (f *NetFabric) Size() int { return len(f.addrs) }

func (f *NetFabric) Now() float64 {
	return time.Since(f.start).Seconds()
}

func (f *NetFabric) client(dest int) (*rpc.Client, error) {
	f.mu.Lock()
	if c, ok := f.clients[dest]; ok {
		f.mu.Unlock()
		return c, nil
	}
	f.mu.Unlock()

	c, err := dialWithRetry(f.addrs[dest], 20, 50*time.Millisecond)
	if err != nil {
		return nil, &Error{Rank: f.rank, Op: fmt.Sprintf("dial rank %d", dest), Err: err}
	}

	f.mu.Lock()
	if existing, ok := f.clients[dest]; ok {
		f.mu.Unlock()
		c.Close()
		return existing, nil
	}
	f.clients[dest] = c
	f.mu.Unlock()
	return c, nil
}

func dialWithRetry(addr string, attempts int, delay time.Duration) (*rpc.Client, error) {
	var lastErr error
	for range attempts {
		c, err := rpc.Dial("tcp", addr)
		if err == nil {
			return c, nil
		}
		lastErr = err
		time.Sleep(delay)
	}
	return nil, lastErr
}

func (f *NetFabric) SendFloats(dest, tag int, payload []float32) error {
	c, err := f.client(dest)
	if err != nil {
		return err
	}
	cp := make([]float32, len(payload))
	copy(cp, payload)
	env := FloatEnvelope{From: f.rank, Tag: tag, Payload: cp}
	var ack Ack
	if err := c.Call("Inbox.DeliverFloat", env, &ack); err != nil {
		return &Error{Rank: f.rank, Op: "send floats", Err: err}
	}
	return nil
}

func (f *NetFabric) SendInts(dest, tag int, payload []int32) error {
	c, err := f.client(dest)
	if err != nil {
		return err
	}
	cp := make([]int32, len(payload))
	copy(cp, payload)
	env := IntEnvelope{From: f.rank, Tag: tag, Payload: cp}
	var ack Ack
	if err := c.Call("Inbox.DeliverInt", env, &ack); err != nil {
		return &Error{Rank: f.rank, Op: "send ints", Err: err}
	}
	return nil
}

func (f *NetFabric) RecvFloats(source, tag int) ([]float32, int, error) {
	if source != AnySource {
		env := <-f.floatIn[source]
		return env.Payload, source, nil
	}
	env := recvAnyFloat(f.floatIn, f.rank)
	return env.Payload, env.From, nil
}

func (f *NetFabric) RecvInts(source, tag int) ([]int32, int, error) {
	if source != AnySource {
		env := <-f.intIn[source]
		return env.Payload, source, nil
	}
	env := recvAnyInt(f.intIn, f.rank)
	return env.Payload, env.From, nil
}

func recvAnyFloat(chans []chan FloatEnvelope, self int) FloatEnvelope {
	cases := make([]reflect.SelectCase, 0, len(chans)-1)
	for i, ch := range chans {
		if i == self {
			continue
		}
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)})
	}
	_, value, _ := reflect.Select(cases)
	return value.Interface().(FloatEnvelope)
}

func recvAnyInt(chans []chan IntEnvelope, self int) IntEnvelope {
	cases := make([]reflect.SelectCase, 0, len(chans)-1)
	for i, ch := range chans {
		if i == self {
			continue
		}
		cases = append(cases, reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(ch)})
	}
	_, value, _ := reflect.Select(cases)
	return value.Interface().(IntEnvelope)
}

// inbox is the RPC-visible receiver that peers call into; it just routes
// deliveries into the addressed rank's per-sender channel.
type inbox struct {
	fab *NetFabric
}

func (ib *inbox) DeliverFloat(env FloatEnvelope, reply *Ack) error {
	ib.fab.floatIn[env.From] <- env
	*reply = Ack{}
	return nil
}

func (ib *inbox) DeliverInt(env IntEnvelope, reply *Ack) error {
	ib.fab.intIn[env.From] <- env
	*reply = Ack{}
	return nil
}
