// client.go contains the login handshake against the portal's ASP.NET login
// form, it knows nothing about the intake board itself.

package sinetsur

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"sinetsur-notifier/internal/components/assert"
	"sinetsur-notifier/internal/components/telemetry"
	"sinetsur-notifier/lib/htmlutil"
	"sinetsur-notifier/lib/restyutil"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/sinetsur")

const (
	report_client_login = "client.login"
)

// DefaultTimeout is the ceiling of a single request to the portal.
const DefaultTimeout = time.Second * 30

var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every session created afterwards write its
// HTTP exchanges to out, nil disables it.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

type ClientOptions struct {
	BaseUrl  string
	Username string
	Password string
	// if unspecified, DefaultTimeout is used
	Timeout time.Duration
	// wraps the transport so the TLS/header fingerprint looks like a browser
	CloudflareBypass bool
}

// Client logs into the portal, every call to Login creates a brand new
// Session so that an expired server-side session never has to be detected.
type Client struct {
	baseUrl *url.URL
	opts    ClientOptions
	tel     telemetry.API
}

func NewClient(opts ClientOptions, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.Username)
	assert.NotEmptyStr(opts.Password)

	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme != "http" && baseUrl.Scheme != "https" {
		return nil, fmt.Errorf("sinetsur: base url must be http(s), got %q", opts.BaseUrl)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{
		baseUrl: baseUrl,
		opts:    opts,
		tel:     telemetry.NewScopedAPI("sinetsur_scraper", tel),
	}, nil
}

// Session is an authenticated connection context, it carries the cookies
// issued by one login handshake.
type Session struct {
	Http *resty.Client
}

// Close releases the connections held by the session.
func (s *Session) Close() {
	if s == nil || s.Http == nil {
		return
	}
	s.Http.GetClient().CloseIdleConnections()
}

// Page is one parsed HTML response, Raw is kept around for debug dumps.
type Page struct {
	Raw []byte
	Doc *goquery.Document
}

// TransportError is returned when the portal could not be reached, did not
// answer in time or answered with a non-success status.
type TransportError struct {
	// Step is the part of the handshake that failed.
	Step string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sinetsur: %s: %s", e.Step, e.Err.Error())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (c *Client) newSession() (*Session, error) {
	httpClient := resty.New()
	httpClient.SetTimeout(c.opts.Timeout)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if c.opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(c.baseUrl.Hostname()))

	// 2 requests max per second
	// max burst >= 2 just means that no requests will be dropped
	rateLimiter := rate.NewLimiter(2, 2)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return rateLimiter.Wait(req.Context())
	})

	telemetry.InstrumentResty(httpClient, c.tel)
	restyutil.InstrumentClient(httpClient, tracer, restyInstrumentOutput, field_password)

	return &Session{Http: httpClient}, nil
}

func (c *Client) fetch(ctx context.Context, step string, req *resty.Request, method string) (Page, error) {
	res, err := req.SetContext(ctx).Execute(method, c.baseUrl.String())
	if err != nil {
		return Page{}, &TransportError{Step: step, Err: err}
	}
	if res.IsError() {
		return Page{}, &TransportError{
			Step: step,
			Err:  fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	body := res.Body()
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		return Page{}, &TransportError{
			Step: step,
			Err:  fmt.Errorf("parse html: %w", err),
		}
	}
	return Page{Raw: body, Doc: doc}, nil
}

// Login performs the two step handshake: it loads the login form to obtain the
// server issued hidden fields, then posts them back along with the
// credentials over the same cookie jar. The returned page is the document the
// portal answers the postback with.
func (c *Client) Login(ctx context.Context) (*Session, Page, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()
	span.SetAttributes(attribute.String("url", c.baseUrl.String()))

	session, err := c.newSession()
	if err != nil {
		span.SetStatus(codes.Error, "failed to create session")
		c.tel.ReportBroken(report_client_login, fmt.Errorf("create session: %w", err))
		return nil, Page{}, err
	}

	loginPage, err := c.fetch(ctx, "get login page", session.Http.R(), resty.MethodGet)
	if err != nil {
		session.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch login page")
		c.tel.ReportWarning(report_client_login, err)
		return nil, Page{}, err
	}

	state := ExtractFormState(loginPage.Doc, RequiredFormFields)
	if len(state) < len(RequiredFormFields) {
		// the portal will most likely reject the postback but it is still
		// worth trying, the response tells us more than guessing here would
		c.tel.ReportWarning(
			report_client_login,
			fmt.Errorf("login page is missing hidden fields"),
			len(state),
		)
	}

	payload := make(map[string]string, len(state)+4)
	for name, value := range state {
		payload[name] = value
	}
	payload[field_username] = c.opts.Username
	payload[field_password] = c.opts.Password
	payload[field_submit_x] = submit_click_x
	payload[field_submit_y] = submit_click_y

	page, err := c.fetch(
		ctx,
		"post credentials",
		session.Http.R().SetFormData(payload),
		resty.MethodPost,
	)
	if err != nil {
		session.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to post credentials")
		c.tel.ReportWarning(report_client_login, err)
		return nil, Page{}, err
	}

	span.SetStatus(codes.Ok, "logged in")
	return session, page, nil
}

// LoggedInUser returns the display name of the logged in account, or "" if
// the page does not show one (usually meaning the login was rejected).
func LoggedInUser(doc *goquery.Document) string {
	return htmlutil.StrippedText(doc.Find(selector_logged_in_user).First())
}
