/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sync

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netbox-zabbix-sync/pkg/logger"
	"github.com/carverauto/netbox-zabbix-sync/pkg/models"
)

type recordingConn struct {
	subject    string
	data       []byte
	publishErr error
	flushed    bool
	drained    bool
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subject, c.data = subject, data
	return c.publishErr
}

func (c *recordingConn) FlushWithContext(context.Context) error {
	c.flushed = true
	return nil
}

func (c *recordingConn) Drain() error {
	c.drained = true
	return nil
}

func TestNATSPublisher_Publish(t *testing.T) {
	conn := &recordingConn{}
	p := newNATSPublisher(conn, "", logger.NewTestLogger())

	summary := &models.RunSummary{RunID: "run-1", Records: 2, Changed: 1}
	summary.Results = []*models.ReconciliationResult{{RecordID: 7, Host: "sw-01"}}
	summary.Results[0].Add(models.FacetStatus, models.FacetApplied, "status differs", nil)

	require.NoError(t, p.Publish(context.Background(), summary))

	assert.Equal(t, defaultSubject, conn.subject)
	assert.True(t, conn.flushed)

	var got map[string]any
	require.NoError(t, json.Unmarshal(conn.data, &got))
	assert.Equal(t, "run-1", got["run_id"])
	assert.InDelta(t, 1, got["changed"], 0)

	require.NoError(t, p.Close())
	assert.True(t, conn.drained)
}

func TestNATSPublisher_PublishError(t *testing.T) {
	conn := &recordingConn{publishErr: errTestError}
	p := newNATSPublisher(conn, "ops.nbzx", logger.NewTestLogger())

	err := p.Publish(context.Background(), &models.RunSummary{RunID: "run-2"})
	require.ErrorIs(t, err, errTestError)
	assert.Equal(t, "ops.nbzx", conn.subject)
	assert.False(t, conn.flushed)
}

func TestNATSTLSConfig_MissingCertificate(t *testing.T) {
	dir := t.TempDir()

	_, err := natsTLSConfig(&NATSTLSConfig{
		CertFile: filepath.Join(dir, "client.pem"),
		KeyFile:  filepath.Join(dir, "client-key.pem"),
		CAFile:   filepath.Join(dir, "ca.pem"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load client certificate")
}

func runNATSServer(t *testing.T) *server.Server {
	t.Helper()

	srv, err := server.NewServer(&server.Options{
		Host: "127.0.0.1",
		Port: -1,
	})
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	t.Cleanup(srv.Shutdown)

	return srv
}

func TestConnectPublisher_DeliversSummary(t *testing.T) {
	srv := runNATSServer(t)

	sub, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(sub.Close)

	msgs := make(chan *nats.Msg, 1)
	subscription, err := sub.ChanSubscribe(defaultSubject, msgs)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	t.Cleanup(func() { _ = subscription.Unsubscribe() })

	p, err := ConnectPublisher(&NATSConfig{URL: srv.ClientURL()}, logger.NewTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summary := &models.RunSummary{RunID: "run-42", Records: 3, Changed: 1, Skipped: 1, Failed: 1}
	require.NoError(t, p.Publish(ctx, summary))

	select {
	case msg := <-msgs:
		assert.Equal(t, "nbzx.runs", msg.Subject)

		var got models.RunSummary
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, "run-42", got.RunID)
		assert.Equal(t, 3, got.Records)
		assert.Equal(t, 1, got.Failed)
	case <-ctx.Done():
		t.Fatal("run summary not delivered")
	}

	require.NoError(t, p.Close())
}

func TestConnectPublisher_Unreachable(t *testing.T) {
	srv := runNATSServer(t)
	url := srv.ClientURL()
	srv.Shutdown()

	_, err := ConnectPublisher(&NATSConfig{URL: url}, logger.NewTestLogger())
	require.Error(t, err)
}
