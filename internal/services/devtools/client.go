package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"chatscribe/internal/logging"
	"chatscribe/internal/services"
)

const maxMessageSize = 16 << 20

// Client is a synchronous Chrome DevTools Protocol client bound to one page
// target. Calls are serialized; the protocol multiplexes events onto the
// same socket, so responses are matched by request id.
type Client struct {
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	nextID int64
}

type target struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	URL                  string `json:"url"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
}

// Attach discovers page targets on the debugging endpoint and connects to
// the most suitable one. A target already showing WhatsApp Web wins over any
// other page.
func Attach(ctx context.Context, devtoolsURL string, logger *slog.Logger) (*Client, error) {
	logger = logging.NewComponentLogger(logger, "devtools")

	targets, err := listTargets(ctx, devtoolsURL)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceClosed, "devtools", "attach", "list targets", err)
	}
	chosen, ok := pickTarget(targets)
	if !ok {
		return nil, services.Wrap(services.ErrSourceClosed, "devtools", "attach", "no page target available", nil)
	}

	conn, _, err := websocket.Dial(ctx, chosen.WebSocketDebuggerURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceClosed, "devtools", "attach", "dial debugger socket", err)
	}
	conn.SetReadLimit(maxMessageSize)

	logger.Info("attached to page target",
		logging.String("target_url", chosen.URL),
		logging.String("target_title", chosen.Title))

	return &Client{conn: conn, logger: logger}, nil
}

func listTargets(ctx context.Context, devtoolsURL string) ([]target, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(devtoolsURL, "/")+"/json/list", nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("debugging endpoint returned %d", resp.StatusCode)
	}

	var targets []target
	if err := json.NewDecoder(resp.Body).Decode(&targets); err != nil {
		return nil, fmt.Errorf("decode target list: %w", err)
	}
	return targets, nil
}

func pickTarget(targets []target) (target, bool) {
	var fallback target
	found := false
	for _, t := range targets {
		if t.Type != "page" || t.WebSocketDebuggerURL == "" {
			continue
		}
		if strings.Contains(t.URL, "web.whatsapp.com") {
			return t, true
		}
		if !found {
			fallback = t
			found = true
		}
	}
	return fallback, found
}

type request struct {
	ID     int64  `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

type response struct {
	ID     int64           `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *protocolError  `json:"error"`
}

type protocolError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type evaluateParams struct {
	Expression    string `json:"expression"`
	ReturnByValue bool   `json:"returnByValue"`
	AwaitPromise  bool   `json:"awaitPromise"`
}

type evaluateResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text      string `json:"text"`
		Exception *struct {
			Description string `json:"description"`
		} `json:"exception"`
	} `json:"exceptionDetails"`
}

// Evaluate runs a JavaScript expression in the page and unmarshals its value
// into out when out is non-nil. Promises are awaited before the value is
// returned.
func (c *Client) Evaluate(ctx context.Context, expression string, out any) error {
	params := evaluateParams{
		Expression:    expression,
		ReturnByValue: true,
		AwaitPromise:  true,
	}
	var result evaluateResult
	if err := c.call(ctx, "Runtime.evaluate", params, &result); err != nil {
		return err
	}
	if result.ExceptionDetails != nil {
		detail := result.ExceptionDetails.Text
		if result.ExceptionDetails.Exception != nil && result.ExceptionDetails.Exception.Description != "" {
			detail = result.ExceptionDetails.Exception.Description
		}
		return services.Wrap(services.ErrTransient, "devtools", "evaluate", detail, nil)
	}
	if out == nil || len(result.Result.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Result.Value, out); err != nil {
		return services.Wrap(services.ErrTransient, "devtools", "evaluate", "decode result value", err)
	}
	return nil
}

// Navigate points the attached page at the given URL.
func (c *Client) Navigate(ctx context.Context, url string) error {
	params := struct {
		URL string `json:"url"`
	}{URL: url}
	return c.call(ctx, "Page.navigate", params, nil)
}

func (c *Client) call(ctx context.Context, method string, params, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	body, err := json.Marshal(request{ID: id, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	if err := c.conn.Write(ctx, websocket.MessageText, body); err != nil {
		return services.Wrap(services.ErrSourceClosed, "devtools", method, "write request", err)
	}

	// Events arrive interleaved with responses; skip anything that is not
	// the answer to this request.
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return services.Wrap(services.ErrSourceClosed, "devtools", method, "read response", err)
		}
		var resp response
		if err := json.Unmarshal(data, &resp); err != nil {
			c.logger.Debug("skipping undecodable protocol message", logging.Error(err))
			continue
		}
		if resp.ID != id {
			continue
		}
		if resp.Error != nil {
			return services.Wrap(services.ErrTransient, "devtools", method, resp.Error.Message, nil)
		}
		if out != nil && len(resp.Result) > 0 {
			if err := json.Unmarshal(resp.Result, out); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

// Close shuts down the debugger socket. The browser and page keep running.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close(websocket.StatusNormalClosure, "done")
}
