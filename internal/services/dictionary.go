package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DictionaryService proxies word lookups to an external dictionary API. The
// provider's behavior beyond this contract is not ours: we pass through what
// the scheduler-facing client needs (phonetics, audio, definitions) and keep
// the request bounded.
type DictionaryService struct {
	httpClient *http.Client
	baseURL    string
}

type DictionaryEntry struct {
	Word      string `json:"word"`
	Phonetic  string `json:"phonetic,omitempty"`
	Phonetics []struct {
		Text  string `json:"text,omitempty"`
		Audio string `json:"audio,omitempty"`
	} `json:"phonetics,omitempty"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example,omitempty"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func NewDictionaryService(baseURL string) *DictionaryService {
	return &DictionaryService{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

func (s *DictionaryService) Lookup(ctx context.Context, word string) ([]DictionaryEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &NotFoundError{Message: fmt.Sprintf("no dictionary entry for %q", word)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary responded with status %d", resp.StatusCode)
	}

	var entries []DictionaryEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary response: %w", err)
	}
	return entries, nil
}
