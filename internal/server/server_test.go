package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-bank-cards/internal/config"
	"github.com/MKhiriev/go-bank-cards/internal/handler"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/mock"
	"github.com/MKhiriev/go-bank-cards/internal/service"
	"github.com/MKhiriev/go-bank-cards/models"
)

var loopback = config.Server{HTTPAddress: "127.0.0.1:0", GRPCAddress: "127.0.0.1:0"}

func newTestServers(t *testing.T, cfg config.Server) *Servers {
	t.Helper()

	healthService := mock.NewMockHealthService(gomock.NewController(t))
	healthService.EXPECT().Liveness(gomock.Any()).Return(models.HealthReport{Status: models.HealthUp}).AnyTimes()
	healthService.EXPECT().Readiness(gomock.Any()).Return(models.HealthReport{Status: models.HealthUp}).AnyTimes()

	handlers, err := handler.NewHandlers(&service.Services{HealthService: healthService}, cfg, logger.Nop())
	require.NoError(t, err)

	servers, err := NewServer(handlers, cfg, logger.Nop())
	require.NoError(t, err)
	return servers
}

// runServers starts s and returns a function that stops it and reports Run's result.
func runServers(t *testing.T, s *Servers) func() error {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return after cancel")
			return nil
		}
	}
}

func TestNewServer_NoServers(t *testing.T) {
	s, err := NewServer(&handler.Handlers{}, loopback, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_BusyAddress(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	_, err = newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: busy.Addr().String()}, logger.Nop())
	assert.Error(t, err)
}

func TestServers_HTTP(t *testing.T) {
	s := newTestServers(t, config.Server{HTTPAddress: "127.0.0.1:0"})
	require.NotNil(t, s.httpServer)
	assert.Nil(t, s.gRPCServer)

	stop := runServers(t, s)

	resp, err := http.Get("http://" + s.httpServer.Addr() + "/actuator/health/liveness")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"UP"}`, string(body))

	require.NoError(t, stop())

	_, err = http.Get("http://" + s.httpServer.Addr() + "/actuator/health/liveness")
	assert.Error(t, err, "listener must be closed after shutdown")
}

func TestServers_GRPCHealth(t *testing.T) {
	s := newTestServers(t, loopback)
	require.NotNil(t, s.gRPCServer)

	stop := runServers(t, s)

	conn, err := grpc.NewClient(s.gRPCServer.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := healthpb.NewHealthClient(conn)

	require.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, stop())
}

func TestHTTPServer_ShutdownReturnsNil(t *testing.T) {
	srv, err := newHTTPServer(http.NotFoundHandler(), config.Server{HTTPAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.RunServer() }()

	// wait until the listener accepts connections
	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", srv.Addr())
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}
