package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pantryscan/backend/internal/domain"
)

// blockingSearchClient parks SearchItems until release is closed, simulating
// a slow product-search call
type blockingSearchClient struct {
	release chan struct{}
	resp    *domain.IchibaSearchResponse
}

func (b *blockingSearchClient) SearchItems(ctx context.Context, keyword string) (*domain.IchibaSearchResponse, error) {
	<-b.release
	return b.resp, nil
}

func newManager(client domain.ProductSearchClient) *ScanManager {
	resolver := NewProductResolver(client, NewNormalizer(false))
	return NewScanManager(resolver, time.Minute)
}

func submitRepeats(t *testing.T, m *ScanManager, id, code string, n int) SessionStatus {
	t.Helper()
	var status SessionStatus
	var err error
	for i := 0; i < n; i++ {
		status, err = m.SubmitFrame(context.Background(), id, code)
		if err != nil {
			t.Fatalf("SubmitFrame(%q) error = %v", code, err)
		}
	}
	return status
}

func logContains(log []string, substr string) bool {
	for _, line := range log {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestScanManager_ConfirmAndResolve(t *testing.T) {
	m := newManager(&stubSearchClient{resp: listings("国産 りんご1個（青森県産）")})

	sess := m.Start(context.Background())
	if sess.State != SessionScanning {
		t.Fatalf("Start() state = %q, want scanning", sess.State)
	}

	status := submitRepeats(t, m, sess.ID, "4901234567890", 4)
	if status.State != SessionScanning || status.ConfirmedCode != "" {
		t.Fatalf("four repeats should not confirm, got %+v", status)
	}

	status = submitRepeats(t, m, sess.ID, "4901234567890", 1)
	if status.State != SessionConfirmed {
		t.Fatalf("fifth repeat state = %q, want confirmed", status.State)
	}
	if status.ConfirmedCode != "4901234567890" {
		t.Errorf("ConfirmedCode = %q, want the scanned code", status.ConfirmedCode)
	}
	if status.SuggestedName != "りんご" {
		t.Errorf("SuggestedName = %q, want %q", status.SuggestedName, "りんご")
	}
	if !logContains(status.Log, "barcode confirmed") {
		t.Errorf("log %v missing confirmation line", status.Log)
	}
}

func TestScanManager_NotFound(t *testing.T) {
	m := newManager(&stubSearchClient{err: domain.ErrProductNotFound})

	sess := m.Start(context.Background())
	status := submitRepeats(t, m, sess.ID, "4900000000000", 5)

	if status.State != SessionConfirmed {
		t.Fatalf("state = %q, want confirmed", status.State)
	}
	if status.SuggestedName != "" {
		t.Errorf("SuggestedName = %q, want empty for not-found", status.SuggestedName)
	}
	if !logContains(status.Log, "no product found") {
		t.Errorf("log %v missing not-found message", status.Log)
	}
}

func TestScanManager_TransportError(t *testing.T) {
	m := newManager(&stubSearchClient{err: errors.New("connection refused")})

	sess := m.Start(context.Background())
	status := submitRepeats(t, m, sess.ID, "4900000000000", 5)

	if !logContains(status.Log, "product search failed") {
		t.Errorf("log %v missing transport-error message", status.Log)
	}
	if status.SuggestedName != "" {
		t.Errorf("SuggestedName = %q, want empty on error", status.SuggestedName)
	}
}

func TestScanManager_StartIsNoOpWhileActive(t *testing.T) {
	m := newManager(&stubSearchClient{resp: listings("りんご")})

	first := m.Start(context.Background())
	second := m.Start(context.Background())
	if first.ID != second.ID {
		t.Errorf("Start() while scanning created a new session %q, want no-op returning %q", second.ID, first.ID)
	}

	if _, err := m.Stop(context.Background(), first.ID); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	third := m.Start(context.Background())
	if third.ID == first.ID {
		t.Error("Start() after stop should create a fresh session")
	}
}

func TestScanManager_StopDiscardsState(t *testing.T) {
	m := newManager(&stubSearchClient{resp: listings("りんご")})

	sess := m.Start(context.Background())
	submitRepeats(t, m, sess.ID, "4901234567890", 3)

	status, err := m.Stop(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if status.State != SessionStopped {
		t.Fatalf("state after stop = %q, want stopped", status.State)
	}

	// Frames after stop are ignored; the partial repeat count is gone
	status = submitRepeats(t, m, sess.ID, "4901234567890", 5)
	if status.State != SessionStopped || status.ConfirmedCode != "" {
		t.Errorf("stopped session should ignore frames, got %+v", status)
	}
}

func TestScanManager_UnknownSession(t *testing.T) {
	m := newManager(&stubSearchClient{resp: listings("りんご")})

	if _, err := m.SubmitFrame(context.Background(), "missing", "A"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("SubmitFrame() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Status("missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Status() error = %v, want ErrSessionNotFound", err)
	}
	if _, err := m.Stop(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Stop() error = %v, want ErrSessionNotFound", err)
	}
}

func TestScanManager_StaleResolutionDiscarded(t *testing.T) {
	client := &blockingSearchClient{
		release: make(chan struct{}),
		resp:    listings("りんご"),
	}
	m := newManager(client)

	sess := m.Start(context.Background())
	submitRepeats(t, m, sess.ID, "4901234567890", 4)

	// The fifth frame confirms and then blocks inside the product search
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.SubmitFrame(context.Background(), sess.ID, "4901234567890")
	}()

	// Wait for the confirmation to land before stopping
	deadline := time.After(2 * time.Second)
	for {
		status, err := m.Status(sess.ID)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if status.State == SessionConfirmed {
			break
		}
		select {
		case <-deadline:
			t.Fatal("session never reached confirmed state")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if _, err := m.Stop(context.Background(), sess.ID); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	close(client.release)
	<-done

	status, err := m.Status(sess.ID)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.State != SessionStopped {
		t.Errorf("state = %q, want stopped", status.State)
	}
	if status.SuggestedName != "" {
		t.Errorf("SuggestedName = %q, want empty: late resolution must be discarded", status.SuggestedName)
	}
	if logContains(status.Log, "product name") {
		t.Errorf("log %v should not record a discarded resolution", status.Log)
	}
}

func TestScanManager_IdleSessionExpires(t *testing.T) {
	m := newManager(&stubSearchClient{resp: listings("りんご")})

	current := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return current }

	sess := m.Start(context.Background())

	current = current.Add(2 * time.Minute)
	if _, err := m.Status(sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Status() after TTL error = %v, want ErrSessionNotFound", err)
	}

	// The expired session no longer blocks a new one
	fresh := m.Start(context.Background())
	if fresh.ID == sess.ID {
		t.Error("expired session should not be reused")
	}
}
