package namecheap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ProductionURL and SandboxURL are the registrar's two API endpoints.
	// Sandbox accounts are separate from production accounts.
	ProductionURL = "https://api.namecheap.com/xml.response"
	SandboxURL    = "https://api.sandbox.namecheap.com/xml.response"

	// Registrar-enforced request quotas. The client does not throttle;
	// these are exported so callers can budget their own pacing.
	RateLimitPerMinute = 20
	RateLimitPerHour   = 700
	RateLimitPerDay    = 8000

	// DefaultTimeout bounds the full HTTP round trip when Options.Timeout
	// is zero and no custom HTTPClient is supplied.
	DefaultTimeout = 30 * time.Second
)

// Options configures a Client. Credentials are required; everything else
// has a usable default.
type Options struct {
	APIUser  string
	APIKey   string
	UserName string
	ClientIP string

	// Sandbox switches the base host to the registrar's test environment.
	Sandbox bool

	// BaseURL overrides the endpoint entirely. Intended for tests.
	BaseURL string

	// Timeout is the connect+read deadline for each request. Zero means
	// DefaultTimeout. Ignored when HTTPClient is set.
	Timeout time.Duration

	HTTPClient *http.Client

	// Logger receives debug records for each request/response. Nil
	// discards them.
	Logger *slog.Logger
}

// Client talks to the Namecheap API. Credentials are immutable for the
// lifetime of the client; all methods are safe for concurrent use since
// every call is an independent request.
type Client struct {
	apiUser  string
	apiKey   string
	userName string
	clientIP string

	baseURL string
	http    *http.Client
	log     *slog.Logger

	Domains    *DomainsService
	DNS        *DNSService
	Users      *UsersService
	Whoisguard *WhoisguardService
}

// New builds a Client from explicit options. All four credential fields
// are required; missing ones are reported together in a single
// ValidationError, same as the env loader.
func New(opts Options) (*Client, error) {
	var missing []string
	if opts.APIUser == "" {
		missing = append(missing, "api_user (NAMECHEAP_API_USER)")
	}
	if opts.APIKey == "" {
		missing = append(missing, "api_key (NAMECHEAP_API_KEY)")
	}
	if opts.UserName == "" {
		missing = append(missing, "username (NAMECHEAP_USERNAME)")
	}
	if opts.ClientIP == "" {
		missing = append(missing, "client_ip (NAMECHEAP_CLIENT_IP)")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Field:  "credentials",
			Reason: "missing " + strings.Join(missing, ", "),
		}
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		if opts.Sandbox {
			baseURL = SandboxURL
		} else {
			baseURL = ProductionURL
		}
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		apiUser:  opts.APIUser,
		apiKey:   opts.APIKey,
		userName: opts.UserName,
		clientIP: opts.ClientIP,
		baseURL:  baseURL,
		http:     hc,
		log:      log,
	}
	c.Domains = &DomainsService{client: c}
	c.DNS = &DNSService{client: c}
	c.Users = &UsersService{client: c}
	c.Whoisguard = &WhoisguardService{client: c}
	return c, nil
}

// FromEnv builds a Client from NAMECHEAP_* environment variables,
// loading a .env file from the working directory first if one exists.
//
//	NAMECHEAP_API_USER, NAMECHEAP_API_KEY, NAMECHEAP_USERNAME,
//	NAMECHEAP_CLIENT_IP (auto-detected when unset),
//	NAMECHEAP_USE_SANDBOX (boolean, defaults to true)
func FromEnv() (*Client, error) {
	// Missing .env is fine; real env vars win over file values.
	_ = godotenv.Load()

	opts := Options{
		APIUser:  os.Getenv("NAMECHEAP_API_USER"),
		APIKey:   os.Getenv("NAMECHEAP_API_KEY"),
		UserName: os.Getenv("NAMECHEAP_USERNAME"),
		ClientIP: os.Getenv("NAMECHEAP_CLIENT_IP"),
		Sandbox:  true,
	}
	if v, ok := os.LookupEnv("NAMECHEAP_USE_SANDBOX"); ok {
		opts.Sandbox = parseEnvBool(v)
	}

	if opts.ClientIP == "" && opts.APIUser != "" && opts.APIKey != "" && opts.UserName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		ip, err := DetectClientIP(ctx)
		if err != nil {
			return nil, err
		}
		opts.ClientIP = ip
	}

	return New(opts)
}

func parseEnvBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// DetectClientIP looks up the caller's public IPv4 address via an external
// service. The registrar rejects requests whose ClientIp does not match a
// whitelisted address, so this is only a convenience for callers on
// residential connections.
func DetectClientIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.ipify.org", nil)
	if err != nil {
		return "", &TransportError{Op: "detect client ip", Err: err}
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "detect client ip", Err: err, Timeout: isTimeoutErr(err)}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return "", &TransportError{Op: "detect client ip", Err: err}
	}
	ip := strings.TrimSpace(string(body))
	if ip == "" {
		return "", &ValidationError{Field: "client_ip", Reason: "ip lookup returned an empty body"}
	}
	return ip, nil
}
