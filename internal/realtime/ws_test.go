package realtime

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskly/internal/models"
)

func TestComputeAcceptKey(t *testing.T) {
	// example handshake from RFC 6455 section 1.3
	assert.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", computeAcceptKey("dGhlIHNhbXBsZSBub25jZQ=="))
}

func TestUpgradeRejectsPlainRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	_, err := Upgrade(rec, req)
	assert.Error(t, err)
}

type testClient struct {
	conn net.Conn
	r    *bufio.Reader
}

func dial(t *testing.T, url string) *testClient {
	t.Helper()
	conn, err := net.Dial("tcp", strings.TrimPrefix(url, "http://"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	req, err := http.NewRequest(http.MethodGet, url+"/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Upgrade", "websocket")
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
	req.Header.Set("Sec-WebSocket-Version", "13")
	require.NoError(t, req.Write(conn))

	r := bufio.NewReader(conn)
	resp, err := http.ReadResponse(r, req)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	require.Equal(t, "s3pPLMBiTxaQ9kYGzzhZRbK+xOo=", resp.Header.Get("Sec-WebSocket-Accept"))
	return &testClient{conn: conn, r: r}
}

func (c *testClient) readText(t *testing.T) []byte {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	header := make([]byte, 2)
	_, err := io.ReadFull(c.r, header)
	require.NoError(t, err)
	require.Equal(t, byte(0x80|opText), header[0])
	length := int(header[1] & 0x7F)
	if length == 126 {
		ext := make([]byte, 2)
		_, err = io.ReadFull(c.r, ext)
		require.NoError(t, err)
		length = int(binary.BigEndian.Uint16(ext))
	}
	payload := make([]byte, length)
	_, err = io.ReadFull(c.r, payload)
	require.NoError(t, err)
	return payload
}

func (c *testClient) sendClose(t *testing.T) {
	t.Helper()
	// masked, empty close frame
	_, err := c.conn.Write([]byte{0x80 | opClose, 0x80, 0, 0, 0, 0})
	require.NoError(t, err)
}

func TestStreamDeliversUntilClientCloses(t *testing.T) {
	reg := newTestRegistry(4)
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(done)
		conn, err := Upgrade(w, r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer conn.Close()
		sub := reg.Subscribe(42)
		defer reg.Unsubscribe(sub)
		_ = Stream(context.Background(), conn, sub, time.Second)
	}))
	defer srv.Close()

	client := dial(t, srv.URL)
	require.Eventually(t, func() bool { return reg.Connected(42) }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 1, reg.Publish(42, models.NotificationPushed{ID: 9, Message: "hello", Link: "/tasks/3"}))

	var got models.NotificationPushed
	require.NoError(t, json.Unmarshal(client.readText(t), &got))
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "hello", got.Message)
	assert.Equal(t, "/tasks/3", got.Link)

	client.sendClose(t)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end after close frame")
	}
	assert.False(t, reg.Connected(42))
}

func TestStreamEndsWhenUnsubscribed(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := newConn(server, nil)
	reg := newTestRegistry(1)
	sub := reg.Subscribe(1)

	errc := make(chan error, 1)
	go func() { errc <- Stream(context.Background(), conn, sub, time.Second) }()

	reg.Unsubscribe(sub)
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not end")
	}
}

func TestWriteTimesOutOnStalledPeer(t *testing.T) {
	server, client := net.Pipe()
	defer client.Close()
	conn := newConn(server, nil)

	// nobody reads from client, so the pipe write blocks until the deadline
	err := conn.WriteJSON(models.NotificationPushed{ID: 1}, 50*time.Millisecond)
	require.Error(t, err)
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}
