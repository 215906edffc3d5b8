package enrichimpl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/domain"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/enrich"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type Impl struct {
	http     *resty.Client
	retryCfg retry.Config
	logger   logger.Logger
}

var _ enrich.Client = (*Impl)(nil)

func New(opts Opts) *Impl {
	client := resty.New()
	client.SetHeader("user-agent", opts.Config.Browser.UserAgent)
	client.SetHeader("accept-language", "en-US,en;q=0.9")
	client.SetTimeout(opts.Config.Extractor.EnrichTimeout)
	if opts.Config.Browser.SessionID != "" {
		client.SetCookie(&http.Cookie{Name: "sessionid", Value: opts.Config.Browser.SessionID})
	}

	return &Impl{
		http:     client,
		retryCfg: retry.DefaultConfig().WithRetries(opts.Config.Enrich.Retries),
		logger:   opts.Logger.WithComponent("Enricher"),
	}
}

// Enrich fetches the post page and reads its Open Graph tags.
func (e *Impl) Enrich(ctx context.Context, link string) (domain.Enrichment, error) {
	var body []byte
	fetch := func() error {
		res, err := e.http.R().SetContext(ctx).Get(link)
		if err != nil {
			return err
		}
		switch code := res.StatusCode(); {
		case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
			return fmt.Errorf("post page returned %d", code)
		case code >= http.StatusBadRequest:
			return retry.Permanent(fmt.Errorf("post page returned %d", code))
		}
		body = res.Body()
		return nil
	}

	if err := retry.Do(ctx, e.logger, "EnrichPost", fetch, e.retryCfg); err != nil {
		return domain.Enrichment{}, errors.Wrap(err, "fetch post page")
	}

	enrichment, err := Parse(body, link)
	if err != nil {
		return domain.Enrichment{}, errors.Wrap(err, "parse post page")
	}
	e.logger.Debug("Post page read", "link", link, "type", enrichment.Type, "sidecar", enrichment.IsSidecar)
	return enrichment, nil
}

// Parse reads an Enrichment out of a post page. link names the post when the
// page's own og:url is missing; it may be empty.
func Parse(page []byte, link string) (domain.Enrichment, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return domain.Enrichment{}, err
	}

	out := domain.Enrichment{
		VideoURL: firstMeta(doc, "og:video:secure_url", "og:video", "og:video:url"),
		Image:    firstMeta(doc, "og:image"),
		Type:     firstMeta(doc, "og:type"),
	}
	out.IsSidecar = primaryIsSidecar(string(page), pageShortcode(doc, link))
	return out, nil
}

func firstMeta(doc *goquery.Document, properties ...string) string {
	for _, prop := range properties {
		sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, prop, prop)
		if v := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); v != "" {
			return v
		}
	}
	return ""
}
