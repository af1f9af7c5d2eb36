package ui

import (
	"testing"
	"time"

	"github.com/wanderwise/wander/internal/network"
	tu "github.com/wanderwise/wander/internal/testing"
)

func TestConnectivityRelay(t *testing.T) {
	t.Run("InitialStateFromMonitor", func(t *testing.T) {
		monitor := network.NewMonitor(tu.NewTogglableProbe(true).Probe, time.Minute, nil)
		m := NewModel(nil, monitor)
		defer m.Close()

		if !m.online {
			t.Error("expected model to start online")
		}
		if m.netChan == nil {
			t.Error("expected a connectivity channel when a monitor is provided")
		}
	})

	t.Run("NilMonitorDisablesRelay", func(t *testing.T) {
		m := NewModel(nil, nil)
		defer m.Close()

		if m.netChan != nil {
			t.Error("expected no connectivity channel without a monitor")
		}
	})

	t.Run("DropsTransitionsWhenChannelFull", func(t *testing.T) {
		m := &Model{netChan: make(chan bool, 1)}
		m.relay(true)

		done := make(chan struct{})
		go func() {
			m.relay(false)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("relay blocked on a full channel")
		}

		if got := <-m.netChan; !got {
			t.Errorf("expected the first transition to be kept, got %v", got)
		}
		select {
		case got := <-m.netChan:
			t.Errorf("expected the overflow transition to be dropped, got %v", got)
		default:
		}
	})
}
