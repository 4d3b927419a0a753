package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

func runSearch(apiURL, query, location, theme, mood string, upcoming bool, topK int, out io.Writer) error {
	payload := map[string]interface{}{
		"query": query,
		"filters": map[string]interface{}{
			"location":     location,
			"theme":        theme,
			"mood":         mood,
			"upcomingOnly": upcoming,
		},
		"topK": topK,
	}
	return postJSON(apiURL+"/api/search", payload, out)
}

func runSimilar(apiURL, eventID string, topK int, out io.Writer) error {
	u := apiURL + "/api/events/" + url.PathEscape(eventID) + "/similar"
	if topK > 0 {
		u += fmt.Sprintf("?k=%d", topK)
	}
	return getJSON(u, out)
}

func runRecommend(apiURL string, themes, moods []string, topK int, out io.Writer) error {
	payload := map[string]interface{}{
		"themes": themes,
		"moods":  moods,
		"k":      topK,
	}
	return postJSON(apiURL+"/api/recommendations", payload, out)
}

func runRate(apiURL, eventID string, rating int, comment string, out io.Writer) error {
	payload := map[string]interface{}{
		"rating":  rating,
		"comment": comment,
	}
	return postJSON(apiURL+"/api/events/"+url.PathEscape(eventID)+"/feedback", payload, out)
}

func runRating(apiURL, eventID string, out io.Writer) error {
	return getJSON(apiURL+"/api/events/"+url.PathEscape(eventID)+"/rating", out)
}

func postJSON(u string, payload interface{}, out io.Writer) error {
	body, _ := json.Marshal(payload)
	resp, err := http.Post(u, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return copyResponse(resp, out)
}

func getJSON(u string, out io.Writer) error {
	resp, err := http.Get(u)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	return copyResponse(resp, out)
}

func copyResponse(resp *http.Response, out io.Writer) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err := io.Copy(out, resp.Body)
	if err == nil {
		fmt.Fprintln(out)
	}
	return err
}
