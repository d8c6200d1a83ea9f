// analysis — HTTP-клиент внешнего сервиса анализа запросов и суммаризации.
// Сам сервис (LLM) — внешний коллаборатор; здесь только его контракт.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Известные интенты анализатора. Список закрыт на стороне сервиса,
// неизвестные значения ведут себя как IntentSearch.
const (
	IntentNearby   = "nearby"
	IntentCategory = "category"
	IntentSource   = "source"
	IntentTrending = "trending"
	IntentScore    = "score"
	IntentSearch   = "search"
)

// Result — структурированный разбор пользовательского запроса.
type Result struct {
	// Intents — интенты в порядке убывания уверенности.
	Intents []string `json:"intents"`
	// Entities — извлечённые сущности (source_name, category, lat, lon,
	// score, search_query — состав зависит от интента).
	Entities map[string]any `json:"entities"`
}

// Client — клиент внешнего анализатора.
type Client struct {
	baseURL string
	http    *http.Client
}

// New создаёт клиент. httpClient обязан иметь таймаут — клиент его не навешивает.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ProcessQuery отправляет запрос пользователя на разбор.
func (c *Client) ProcessQuery(ctx context.Context, query string) (*Result, error) {
	const op = "analysis.ProcessQuery"

	var out Result
	if err := c.post(ctx, "/process-query", map[string]string{"query": query}, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// Summarize возвращает аннотацию текста.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	const op = "analysis.Summarize"

	var out struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/summarize/", map[string]string{"text": text}, &out); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return out.Summary, nil
}

// post — один POST с JSON-телом и декодированием JSON-ответа.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
