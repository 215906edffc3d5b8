package scraperimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/browser/mocks"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	enrichmocks "github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich/mocks"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/extractor"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Extractor.Host = "www.instagram.com"
	cfg.Extractor.Markers = extractor.DefaultMarkers
	cfg.Extractor.AggressiveLimit = 12
	cfg.Browser.ScrollPixels = 600
	return cfg
}

func newTestScraper(t *testing.T) (*Impl, *mocks.MockDriver, *mocks.MockSession, *enrichmocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	driver := mocks.NewMockDriver(ctrl)
	session := mocks.NewMockSession(ctrl)
	enricher := enrichmocks.NewMockClient(ctrl)

	impl := New(Opts{
		Config:   testConfig(),
		Logger:   logger.Nop(),
		Driver:   driver,
		Enricher: enricher,
	})
	impl.cascade = extractor.NewCascade(extractor.Options{
		Markers: extractor.DefaultMarkers,
		Delay:   extractor.NoDelay{},
	}, enricher, logger.Nop())
	return impl, driver, session, enricher
}

func TestNormalizeUsername(t *testing.T) {
	for raw, want := range map[string]string{
		"natgeo":       "natgeo",
		" @nat.geo_1 ": "nat.geo_1",
	} {
		got, err := NormalizeUsername(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "@", "a/b", "../etc", "has space", "waaaaaaaaaaaaaaaaaaaaaaaaaaaaay_too_long"} {
		_, err := NormalizeUsername(raw)
		assert.ErrorIs(t, err, errors.ErrInvalidInput, raw)
	}
}

func TestScrapeNetworkCapture(t *testing.T) {
	impl, driver, session, _ := newTestScraper(t)
	entries := []domain.NetworkEntry{{
		URL: "https://www.instagram.com/graphql/query",
		Data: map[string]any{"data": map[string]any{"user": map[string]any{
			"edge_owner_to_timeline_media": map[string]any{"edges": []any{
				map[string]any{"node": map[string]any{"shortcode": "N1", "display_url": "https://cdn/n1.jpg"}},
			}},
		}}},
	}}

	driver.EXPECT().Open(gomock.Any(), "https://www.instagram.com/natgeo/").Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), 600).Return(nil)
	session.EXPECT().Markup(gomock.Any()).Return("<html></html>", nil)
	session.EXPECT().NetworkEntries().Return(entries).AnyTimes()
	session.EXPECT().Close().Return(nil)

	result, err := impl.Scrape(context.Background(), "@natgeo")

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyNetworkStructured, result.Strategy)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, "N1", result.Posts[0].Shortcode)
}

func TestScrapeUsesInlineScripts(t *testing.T) {
	impl, driver, session, _ := newTestScraper(t)
	markup := `<html><head><script type="application/json">{"items": [{"code": "INL", "media_type": 1}]}</script></head></html>`

	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().Markup(gomock.Any()).Return(markup, nil)
	session.EXPECT().NetworkEntries().Return(nil).AnyTimes()
	session.EXPECT().Close().Return(nil)

	result, err := impl.Scrape(context.Background(), "natgeo")

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyNetworkItems, result.Strategy)
	assert.Equal(t, "INL", result.Posts[0].Shortcode)
}

func TestScrapeAggressiveDomWithEnrichment(t *testing.T) {
	impl, driver, session, enricher := newTestScraper(t)
	markup := `<html><body><div><a href="/reel/R1/">reel</a></div></body></html>`

	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().Markup(gomock.Any()).Return(markup, nil)
	session.EXPECT().NetworkEntries().Return(nil).AnyTimes()
	session.EXPECT().Close().Return(nil)
	enricher.EXPECT().Enrich(gomock.Any(), "https://www.instagram.com/reel/R1/").
		Return(domain.Enrichment{VideoURL: "https://cdn/r1.mp4", Image: "https://cdn/r1.jpg"}, nil)

	result, err := impl.Scrape(context.Background(), "natgeo")

	require.NoError(t, err)
	assert.Equal(t, domain.StrategyDomAggressive, result.Strategy)
	require.Len(t, result.Posts, 1)
	assert.Equal(t, domain.MediaTypeVideo, result.Posts[0].Type)
}

func TestScrapeDiagnostic(t *testing.T) {
	impl, driver, session, _ := newTestScraper(t)

	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), gomock.Any()).Return(assert.AnError)
	session.EXPECT().Markup(gomock.Any()).Return("<html><title>Login</title></html>", nil)
	session.EXPECT().NetworkEntries().Return(nil).AnyTimes()
	session.EXPECT().Title(gomock.Any()).Return("Login • Instagram", nil)
	session.EXPECT().Close().Return(nil)

	result, err := impl.Scrape(context.Background(), "natgeo")

	require.NoError(t, err)
	require.True(t, result.IsDiagnostic())
	assert.Equal(t, 0, result.Diagnostic.Debug.NetworkRequests)
	assert.Equal(t, "Login • Instagram", result.Diagnostic.Debug.PageTitle)
	assert.Contains(t, result.Diagnostic.Debug.HTMLSnippet, "<title>Login</title>")
}

func TestScrapeBoundsPageReads(t *testing.T) {
	impl, driver, session, _ := newTestScraper(t)
	impl.config.Browser.ReadTimeout = 2 * time.Second

	assertDeadline := func(ctx context.Context) {
		deadline, ok := ctx.Deadline()
		require.True(t, ok, "page read without deadline")
		assert.LessOrEqual(t, time.Until(deadline), 2*time.Second)
	}

	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ int) error {
		assertDeadline(ctx)
		return nil
	})
	session.EXPECT().Markup(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		assertDeadline(ctx)
		return "<html></html>", nil
	})
	session.EXPECT().NetworkEntries().Return(nil).AnyTimes()
	session.EXPECT().Title(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return "", nil
	})
	session.EXPECT().Close().Return(nil)

	result, err := impl.Scrape(context.Background(), "natgeo")

	require.NoError(t, err)
	assert.True(t, result.IsDiagnostic())
}

func TestScrapeSlowMarkupFallsThroughToDiagnostic(t *testing.T) {
	impl, driver, session, _ := newTestScraper(t)
	impl.config.Browser.ReadTimeout = 20 * time.Millisecond

	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(session, nil)
	session.EXPECT().Scroll(gomock.Any(), gomock.Any()).Return(nil)
	session.EXPECT().Markup(gomock.Any()).DoAndReturn(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	session.EXPECT().NetworkEntries().Return(nil).AnyTimes()
	session.EXPECT().Title(gomock.Any()).Return("", nil)
	session.EXPECT().Close().Return(nil)

	result, err := impl.Scrape(context.Background(), "natgeo")

	require.NoError(t, err)
	require.True(t, result.IsDiagnostic())
	assert.Empty(t, result.Diagnostic.Debug.HTMLSnippet)
}

func TestScrapeOpenFailureIsFatal(t *testing.T) {
	impl, driver, _, _ := newTestScraper(t)
	launchErr := errors.WrapWithCode(assert.AnError, errors.CodeBrowserLaunch, "could not launch")
	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, launchErr)

	_, err := impl.Scrape(context.Background(), "natgeo")

	require.Error(t, err)
	assert.Equal(t, errors.CodeBrowserLaunch, errors.GetCode(err))
}

func TestScrapeRejectsBadUsernameWithoutOpeningBrowser(t *testing.T) {
	impl, driver, _, _ := newTestScraper(t)
	driver.EXPECT().Open(gomock.Any(), gomock.Any()).Times(0)

	_, err := impl.Scrape(context.Background(), "not a user")

	assert.ErrorIs(t, err, errors.ErrInvalidInput)
}
