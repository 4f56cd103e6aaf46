package api

import "time"

// User is the profile object the backend returns from the auth endpoints.
type User struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name,omitempty"`
	PoliticalName string     `json:"political_name,omitempty"`
	Party         string     `json:"party,omitempty"`
	State         string     `json:"state,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
	PlanType      string     `json:"plan_type"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// TokenResponse is returned by both /auth/login and /auth/register.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type RegisterRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	PoliticalName string `json:"political_name,omitempty"`
	Party         string `json:"party,omitempty"`
	State         string `json:"state,omitempty"`
}

// ProfileUpdate carries only the fields the user changed; nil fields are
// omitted from the request body.
type ProfileUpdate struct {
	FullName      *string `json:"full_name,omitempty"`
	PoliticalName *string `json:"political_name,omitempty"`
	Party         *string `json:"party,omitempty"`
	State         *string `json:"state,omitempty"`
	AvatarURL     *string `json:"avatar_url,omitempty"`
}

// NewsItem fields other than the query parameters are server-computed and
// display-only on this side.
type NewsItem struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary,omitempty"`
	Content        string     `json:"content,omitempty"`
	URL            string     `json:"url"`
	ImageURL       string     `json:"image_url,omitempty"`
	Author         string     `json:"author,omitempty"`
	Source         string     `json:"source"`
	Sentiment      string     `json:"sentiment,omitempty"`
	SentimentScore *float64   `json:"sentiment_score,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ScrapedAt      time.Time  `json:"scraped_at"`
	MatchedTerms   []string   `json:"matched_terms,omitempty"`
}

type NewsList struct {
	Items      []NewsItem `json:"items"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
	TotalPages int        `json:"total_pages"`
}

// NewsQuery is passed through to GET /news untouched; empty fields are not
// sent.
type NewsQuery struct {
	Term      string
	Source    string
	Sentiment string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// Sentiment labels used by the backend classifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Filter is a monitored term. MatchCount and CreatedAt are server-computed.
type Filter struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id,omitempty"`
	Term       string    `json:"term"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	MatchCount int       `json:"match_count"`
}

// FilterList carries the quota projection alongside the items. The
// projection, not any client-side count, decides whether adding is allowed.
type FilterList struct {
	Items        []Filter `json:"items"`
	Total        int      `json:"total"`
	LimitReached bool     `json:"limit_reached"`
	PlanLimit    int      `json:"plan_limit"`
}

type FilterUpdate struct {
	Term     *string `json:"term,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

type Stats struct {
	TotalNews        int `json:"total_news"`
	NewsToday        int `json:"news_today"`
	PositiveMentions int `json:"positive_mentions"`
	NegativeMentions int `json:"negative_mentions"`
	NeutralMentions  int `json:"neutral_mentions"`
	ActiveTerms      int `json:"active_terms"`
}

type TrendPoint struct {
	Date         string  `json:"date"`
	Count        int     `json:"count"`
	SentimentAvg float64 `json:"sentiment_avg"`
}

type Trend struct {
	Term string       `json:"term"`
	Data []TrendPoint `json:"data"`
}

type SourceStats struct {
	Source     string  `json:"source"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Dashboard struct {
	Stats      Stats         `json:"stats"`
	Trends     []Trend       `json:"trends"`
	Sources    []SourceStats `json:"sources"`
	RecentNews []NewsItem    `json:"recent_news"`
}
