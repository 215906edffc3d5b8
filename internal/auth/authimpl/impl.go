package authimpl

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/internal/auth"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/config"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/errors"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/logger"
	"github.com/webDevSaiF/MBC-Instagram-Post-Scrapper/pkg/retry"
	"go.uber.org/fx"
)

const cacheKey = "access_token"

// tokenSheet is the token database document: data["Bot Database"][0].access_token.
type tokenSheet struct {
	Data struct {
		BotDatabase []struct {
			AccessToken string `json:"access_token"`
		} `json:"Bot Database"`
	} `json:"data"`
}

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type Impl struct {
	static   string
	sheetURL string
	http     *resty.Client
	cache    *expirable.LRU[string, string]
	retryCfg retry.Config
	logger   logger.Logger
}

var _ auth.Validator = (*Impl)(nil)

func New(opts Opts) *Impl {
	ttl := opts.Config.Auth.TokenCacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	client := resty.New()
	client.SetTimeout(10 * time.Second)

	return &Impl{
		static:   opts.Config.Auth.StaticToken,
		sheetURL: opts.Config.Auth.SheetURL,
		http:     client,
		cache:    expirable.NewLRU[string, string](1, nil, ttl),
		retryCfg: retry.DefaultConfig().WithRetries(1),
		logger:   opts.Logger.WithComponent("TokenValidator"),
	}
}

// Validate accepts token when it matches the configured static token or, failing
// that, the token currently published in the sheet.
func (v *Impl) Validate(ctx context.Context, token string) error {
	if token == "" {
		return errors.Wrap(errors.ErrUnauthorized, "access token missing")
	}
	allowed, err := v.allowedToken(ctx)
	if err != nil {
		v.logger.Error("Could not load allowed token", "error", err)
		return errors.WrapWithCode(errors.ErrUnauthorized, errors.CodeTokenSource, "invalid authorization token")
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(allowed)) != 1 {
		return errors.Wrap(errors.ErrUnauthorized, "invalid authorization token")
	}
	return nil
}

func (v *Impl) allowedToken(ctx context.Context) (string, error) {
	if v.static != "" {
		return v.static, nil
	}
	if token, ok := v.cache.Get(cacheKey); ok {
		return token, nil
	}
	token, err := v.fetchSheet(ctx)
	if err != nil {
		return "", err
	}
	v.cache.Add(cacheKey, token)
	v.logger.Debug("Allowed token refreshed from sheet")
	return token, nil
}

func (v *Impl) fetchSheet(ctx context.Context) (string, error) {
	if v.sheetURL == "" {
		return "", errors.New("no token source configured")
	}

	var token string
	fetch := func() error {
		res, err := v.http.R().SetContext(ctx).Get(v.sheetURL)
		if err != nil {
			return err
		}
		if res.StatusCode() != http.StatusOK {
			err := fmt.Errorf("token sheet returned %d", res.StatusCode())
			if res.StatusCode() < http.StatusInternalServerError {
				return retry.Permanent(err)
			}
			return err
		}
		var sheet tokenSheet
		if err := json.Unmarshal(res.Body(), &sheet); err != nil {
			return retry.Permanent(fmt.Errorf("decode token sheet: %w", err))
		}
		if len(sheet.Data.BotDatabase) == 0 || sheet.Data.BotDatabase[0].AccessToken == "" {
			return retry.Permanent(errors.Wrap(errors.ErrNotFound, "token not found in sheet"))
		}
		token = sheet.Data.BotDatabase[0].AccessToken
		return nil
	}
	if err := retry.Do(ctx, v.logger, "FetchTokenSheet", fetch, v.retryCfg); err != nil {
		return "", err
	}
	return token, nil
}
