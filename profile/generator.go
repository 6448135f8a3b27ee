// Package profile talks to the Anthropic messages API to generate the
// tongue-in-cheek taste profiles shown next to each family member. The rest
// of the app never depends on it: scoring and the leaderboard are complete
// with this collaborator entirely absent.
package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/CarlManson/hottest100/logging"
	"github.com/CarlManson/hottest100/scoring"
)

const anthropicVersion = "2023-06-01"

// Profile is the parsed output of one generation call.
type Profile struct {
	Label       string
	Description string
	Commentary  string
}

// Standing carries the member's current leaderboard position into the
// prompt.
type Standing struct {
	Score        int
	Rank         int
	TotalMembers int
}

// Generator is the Anthropic API client. A nil Generator (no API key
// configured) simply disables profile generation.
type Generator struct {
	apiURL     string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func NewGenerator(apiKey, model string, maxTokens int) *Generator {
	return &Generator{
		apiURL:     "https://api.anthropic.com/v1/messages",
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// WithAPIURL points the generator at a different endpoint, used by tests.
func (g *Generator) WithAPIURL(url string) *Generator {
	g.apiURL = url
	return g
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Generate builds the prompt from the member's picks and current standing,
// calls the API and parses the reply.
func (g *Generator) Generate(ctx context.Context, member scoring.Member, catalog []scoring.Song, main, extended []scoring.Result, standing Standing) (*Profile, error) {
	prompt := buildPrompt(member, catalog, main, extended, standing)

	body, err := json.Marshal(messagesRequest{
		Model:     g.model,
		MaxTokens: g.maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", g.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	logging.Log.Infof("PROFILE: generating profile for member %s", member.ID)
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("profile API returned %d: %s", resp.StatusCode, string(detail))
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode profile API response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return nil, fmt.Errorf("profile API response had no content")
	}

	return parseProfile(parsed.Content[0].Text)
}

// buildPrompt formats one line per pick with its countdown fate, plus the
// member's current standing.
func buildPrompt(member scoring.Member, catalog []scoring.Song, main, extended []scoring.Result, standing Standing) string {
	songs := make(map[string]scoring.Song, len(catalog))
	for _, s := range catalog {
		songs[s.ID] = s
	}
	results := make(map[string]scoring.Result, len(main)+len(extended))
	for _, r := range main {
		results[r.SongID] = r
	}
	for _, r := range extended {
		results[r.SongID] = r
	}

	var pickLines []string
	matchCount := 0
	for _, p := range member.Picks {
		song, ok := songs[p.SongID]
		if !ok {
			continue
		}
		fate := "Didn't make it"
		if r, ok := results[p.SongID]; ok {
			fate = fmt.Sprintf("Made #%d", r.Position)
			matchCount++
		}
		aussie := ""
		if song.Australian {
			aussie = " (Aussie)"
		}
		pickLines = append(pickLines, fmt.Sprintf("%d. %q by %s%s - %s", p.Rank, song.Title, song.Artist, aussie, fate))
	}

	var b strings.Builder
	b.WriteString("You're a cheeky Aussie music critic writing tongue-in-cheek profiles for a family's Triple J Hottest 100 predictions competition. Be friendly, funny, and use Aussie slang.\n\n")
	fmt.Fprintf(&b, "**%s's Picks:**\n%s\n\n", member.Name, strings.Join(pickLines, "\n"))
	b.WriteString("**Their Performance:**\n")
	fmt.Fprintf(&b, "- Score: %d points\n", standing.Score)
	fmt.Fprintf(&b, "- Ranking: %d of %d\n", standing.Rank, standing.TotalMembers)
	fmt.Fprintf(&b, "- Matches: %d out of %d picks made the countdown\n\n", matchCount, len(member.Picks))
	b.WriteString("Write a response in this EXACT format:\n\n")
	b.WriteString("LABEL: [2-3 word punchy description like \"Indie Tragic\", \"Mainstream Merchant\", \"Wildcard Wizard\"]\n\n")
	b.WriteString("DESCRIPTION: [One paragraph (3-4 sentences) that's cheeky and fun, analyzing their music taste. Use Aussie slang, be tongue-in-cheek but friendly.]\n\n")
	b.WriteString("COMMENTARY: [One or two sentences on how they're performing in the competition right now.]\n\n")
	b.WriteString("Keep it short, punchy, and funny. Don't be mean-spirited.")
	return b.String()
}

var labelPattern = regexp.MustCompile(`(?i)LABEL:\s*(.+)`)
var descriptionPattern = regexp.MustCompile(`(?is)DESCRIPTION:\s*(.+?)(?:\n\s*\n|\nCOMMENTARY:|$)`)
var commentaryPattern = regexp.MustCompile(`(?is)COMMENTARY:\s*(.+?)(?:\n\s*\n|$)`)

// parseProfile extracts the labelled sections from the model's free text.
// Label and description are required; commentary is optional.
func parseProfile(content string) (*Profile, error) {
	labelMatch := labelPattern.FindStringSubmatch(content)
	descriptionMatch := descriptionPattern.FindStringSubmatch(content)
	if labelMatch == nil || descriptionMatch == nil {
		return nil, fmt.Errorf("could not parse profile response: %q", content)
	}

	profile := &Profile{
		Label:       strings.TrimSpace(labelMatch[1]),
		Description: strings.TrimSpace(descriptionMatch[1]),
	}
	if commentaryMatch := commentaryPattern.FindStringSubmatch(content); commentaryMatch != nil {
		profile.Commentary = strings.TrimSpace(commentaryMatch[1])
	}
	return profile, nil
}
