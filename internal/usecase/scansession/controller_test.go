//go:build unit

package scansession_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cargo-backoffice/internal/domain/manifest"
	"cargo-backoffice/internal/domain/scan"
	"cargo-backoffice/internal/pkg/clock"
	"cargo-backoffice/internal/pkg/errs"
	"cargo-backoffice/internal/usecase/commands"
	"cargo-backoffice/internal/usecase/scansession"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAttacher returns a canned result (or error) and records every call.
type stubAttacher struct {
	mu      sync.Mutex
	calls   []string
	result  *commands.AttachResult
	err     error
	block   chan struct{} // when set, AttachByScan waits on it
	release chan struct{}
}

func (s *stubAttacher) AttachByScan(_ context.Context, _ uuid.UUID, rawToken string, _ commands.AttachOptions) (*commands.AttachResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, rawToken)
	block := s.block
	s.mu.Unlock()
	if block != nil {
		close(s.release)
		<-block
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		r := *s.result
		return &r, nil
	}
	return &commands.AttachResult{Success: true, AWB: "TAC12345678", ConsigneeName: "Asha Traders"}, nil
}

func (s *stubAttacher) Attach(context.Context, uuid.UUID, uuid.UUID, commands.AttachOptions) (*commands.AttachResult, error) {
	return nil, fmt.Errorf("not used")
}

func (s *stubAttacher) Detach(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID) error {
	return nil
}

func (s *stubAttacher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// recordingFeedback captures outcomes synchronously.
type recordingFeedback struct {
	mu       sync.Mutex
	outcomes []scansession.Outcome
	played   chan struct{}
}

func newRecordingFeedback() *recordingFeedback {
	return &recordingFeedback{played: make(chan struct{}, 16)}
}

func (f *recordingFeedback) Play(o scansession.Outcome) {
	f.mu.Lock()
	f.outcomes = append(f.outcomes, o)
	f.mu.Unlock()
	f.played <- struct{}{}
}

func (f *recordingFeedback) waitForPlay(t *testing.T) scansession.Outcome {
	t.Helper()
	select {
	case <-f.played:
	case <-time.After(2 * time.Second):
		t.Fatal("feedback was never played")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcomes[len(f.outcomes)-1]
}

type countingFocus struct {
	mu    sync.Mutex
	count int
}

func (f *countingFocus) Focus() {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
}

func (f *countingFocus) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func newController(attacher commands.ScanAttacher, opts scansession.Options) *scansession.Controller {
	if opts.ManifestID == (uuid.UUID{}) {
		opts.ManifestID = uuid.New()
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewMockClock(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	}
	opts.Rules = manifest.DefaultRules()
	return scansession.NewController(attacher, opts)
}

func TestSubmit_EmptyInputIgnored(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	c.SetInput("   ")
	res, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Zero(t, stub.callCount())
	assert.Equal(t, scansession.Stats{}, c.Stats())
}

func TestSubmit_Success(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	res, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, "Asha Traders", res.ConsigneeName)

	// Buffer cleared for the next scan, counters updated.
	assert.Empty(t, c.Input())
	assert.Equal(t, 1, c.Stats().SuccessCount)
	assert.False(t, c.IsScanning())
}

// A token the parser rejects produces a local error result: the attacher
// must never be called.
func TestSubmit_ParseFailureStaysLocal(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	c.SetInput("!!!")
	res, err := c.Submit(context.Background(), scan.SourceManual)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, scansession.CodeInvalidScan, res.ErrorCode)
	assert.Zero(t, stub.callCount())
	assert.Equal(t, 1, c.Stats().ErrorCount)
}

// A well-formed manifest token is still the wrong kind of scan here.
func TestSubmit_NonShipmentTokenRejected(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	c.SetInput("MNF-2026-000001")
	res, err := c.Submit(context.Background(), scan.SourceCamera)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, scansession.CodeInvalidScanType, res.ErrorCode)
	assert.Zero(t, stub.callCount())
}

func TestSubmit_SecondScanWhileInFlight(t *testing.T) {
	stub := &stubAttacher{
		block:   make(chan struct{}),
		release: make(chan struct{}),
	}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background(), scan.SourceScanner)
	}()

	<-stub.release // first submit is now inside the attacher
	c.SetInput("TAC87654321")
	_, err := c.Submit(context.Background(), scan.SourceScanner)
	assert.ErrorIs(t, err, errs.ErrScanInFlight)

	close(stub.block)
	<-done
	assert.Equal(t, 1, stub.callCount())
}

func TestSubmit_DuplicateCountsSeparately(t *testing.T) {
	stub := &stubAttacher{result: &commands.AttachResult{
		Success: true, Duplicate: true, AWB: "TAC12345678",
	}}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	res, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	assert.True(t, res.Duplicate)

	stats := c.Stats()
	assert.Equal(t, 0, stats.SuccessCount)
	assert.Equal(t, 1, stats.DuplicateCount)
	assert.Equal(t, 0, stats.ErrorCount)
}

func TestSubmit_CancelledRequest(t *testing.T) {
	stub := &stubAttacher{err: context.Canceled}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	res, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, scansession.CodeRequestCancelled, res.ErrorCode)
	assert.Equal(t, "TAC12345678", res.AWB)
}

func TestSubmit_SystemError(t *testing.T) {
	stub := &stubAttacher{err: fmt.Errorf("connection refused")}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	res, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, scansession.CodeSystemError, res.ErrorCode)
	assert.Equal(t, 1, c.Stats().ErrorCount)
	assert.False(t, c.IsScanning())
}

func TestRetryLast(t *testing.T) {
	stub := &stubAttacher{err: context.Canceled}
	c := newController(stub, scansession.Options{})

	// Nothing submitted yet: retry is a no-op.
	res, err := c.RetryLast(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	assert.Nil(t, res)

	c.SetInput("TAC12345678")
	_, err = c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	stub.err = nil
	res, err = c.RetryLast(context.Background(), scan.SourceScanner)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Success)

	// Both attempts hit the attacher with the same token.
	assert.Equal(t, []string{"TAC12345678", "TAC12345678"}, stub.calls)
}

func TestHistory_CappedMostRecentFirst(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	for i := 0; i < 60; i++ {
		c.SetInput(fmt.Sprintf("TAC%08d", i))
		_, err := c.Submit(context.Background(), scan.SourceScanner)
		require.NoError(t, err)
	}

	history := c.History()
	require.Len(t, history, 50)
	assert.Equal(t, 60, c.Stats().SuccessCount)

	last := c.LastResult()
	require.NotNil(t, last)
	assert.Equal(t, history[0], *last)
}

func TestResetStats(t *testing.T) {
	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{})

	c.SetInput("TAC12345678")
	_, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	c.ResetStats()
	assert.Equal(t, scansession.Stats{}, c.Stats())
	assert.Empty(t, c.History())
	assert.Nil(t, c.LastResult())
}

func TestKeyboardWedge(t *testing.T) {
	stub := &stubAttacher{}
	focus := &countingFocus{}
	c := newController(stub, scansession.Options{Focus: focus})

	// Keys are dropped while the wedge is off.
	_, err := c.HandleKey(context.Background(), 'T')
	require.NoError(t, err)
	assert.Empty(t, c.Input())

	teardown := c.EnableKeyboardWedge()
	assert.True(t, c.WedgeActive())
	assert.GreaterOrEqual(t, focus.calls(), 1)

	for _, r := range "TAC12345678" {
		_, err := c.HandleKey(context.Background(), r)
		require.NoError(t, err)
	}
	assert.Equal(t, "TAC12345678", c.Input())

	// Control characters other than the terminator are dropped.
	_, err = c.HandleKey(context.Background(), '\t')
	require.NoError(t, err)
	assert.Equal(t, "TAC12345678", c.Input())

	res, err := c.HandleKey(context.Background(), '\n')
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, res.Success)
	assert.Equal(t, scan.SourceScanner, res.Source)

	teardown()
	assert.False(t, c.WedgeActive())
	_, err = c.HandleKey(context.Background(), 'X')
	require.NoError(t, err)
	assert.Empty(t, c.Input())
}

func TestHandleBlur_RefocusesWhileWedgeActive(t *testing.T) {
	focus := &countingFocus{}
	c := newController(&stubAttacher{}, scansession.Options{Focus: focus})

	c.HandleBlur()
	assert.Zero(t, focus.calls())

	teardown := c.EnableKeyboardWedge()
	defer teardown()
	before := focus.calls()
	c.HandleBlur()
	assert.Equal(t, before+1, focus.calls())
}

func TestFeedbackOutcomes(t *testing.T) {
	testCases := []struct {
		name    string
		result  *commands.AttachResult
		outcome scansession.Outcome
	}{
		{"success", &commands.AttachResult{Success: true}, scansession.OutcomeSuccess},
		{"duplicate", &commands.AttachResult{Success: true, Duplicate: true}, scansession.OutcomeDuplicate},
		{"rejection", &commands.AttachResult{ErrorCode: manifest.CodeManifestClosed}, scansession.OutcomeError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			feedback := newRecordingFeedback()
			c := newController(&stubAttacher{result: tc.result}, scansession.Options{Feedback: feedback})

			c.SetInput("TAC12345678")
			_, err := c.Submit(context.Background(), scan.SourceScanner)
			require.NoError(t, err)
			assert.Equal(t, tc.outcome, feedback.waitForPlay(t))
		})
	}
}

func TestSoundDisabledSkipsFeedback(t *testing.T) {
	feedback := newRecordingFeedback()
	c := newController(&stubAttacher{}, scansession.Options{Feedback: feedback})
	c.SetSoundEnabled(false)

	c.SetInput("TAC12345678")
	_, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	select {
	case <-feedback.played:
		t.Fatal("feedback played with sound disabled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHooksFire(t *testing.T) {
	var got []string
	var mu sync.Mutex
	record := func(tag string) func(scansession.Result) {
		return func(scansession.Result) {
			mu.Lock()
			got = append(got, tag)
			mu.Unlock()
		}
	}

	stub := &stubAttacher{}
	c := newController(stub, scansession.Options{
		OnSuccess:   record("success"),
		OnDuplicate: record("duplicate"),
		OnError:     record("error"),
	})

	c.SetInput("TAC12345678")
	_, err := c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	stub.result = &commands.AttachResult{Success: true, Duplicate: true}
	c.SetInput("TAC12345678")
	_, err = c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	c.SetInput("not-a-token!")
	_, err = c.Submit(context.Background(), scan.SourceScanner)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"success", "duplicate", "error"}, got)
}
