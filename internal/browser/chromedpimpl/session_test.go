package chromedpimpl

import (
	"context"
	"sync"
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
)

func newDetachedSession() *session {
	ctx, cancel := context.WithCancel(context.Background())
	return &session{
		tabCtx:    ctx,
		tabCancel: cancel,
		capture:   browser.NewCapture(),
		logger:    logger.Nop(),
	}
}

func responseEvents(id string) (*network.EventResponseReceived, *network.EventLoadingFinished) {
	rid := network.RequestID(id)
	received := &network.EventResponseReceived{
		RequestID: rid,
		Type:      network.ResourceTypeXHR,
		Response: &network.Response{
			URL:      "https://www.instagram.com/graphql/query",
			MimeType: "application/json",
		},
	}
	return received, &network.EventLoadingFinished{RequestID: rid}
}

func TestBeginFetchRefusedAfterClose(t *testing.T) {
	s := newDetachedSession()

	require.True(t, s.beginFetch())
	s.inflight.Done()

	require.NoError(t, s.Close())
	assert.False(t, s.beginFetch())
}

func TestOnEventTracksMatchingResponses(t *testing.T) {
	s := newDetachedSession()
	received, _ := responseEvents("1")

	s.onEvent(received)

	_, ok := s.pending.Load(received.RequestID)
	assert.True(t, ok)
	require.NoError(t, s.Close())
}

func TestOnEventAfterCloseStartsNoRead(t *testing.T) {
	s := newDetachedSession()
	received, finished := responseEvents("1")
	s.onEvent(received)
	require.NoError(t, s.Close())

	s.onEvent(finished)

	_, ok := s.pending.Load(received.RequestID)
	assert.False(t, ok)
	s.inflight.Wait()
}

func TestCloseRacingEvents(t *testing.T) {
	s := newDetachedSession()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		received, finished := responseEvents(string(rune('a' + i%26)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.onEvent(received)
			s.onEvent(finished)
		}()
	}
	require.NoError(t, s.Close())
	wg.Wait()

	assert.False(t, s.beginFetch())
}
